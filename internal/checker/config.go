package checker

import "fmt"

// Config tunes the checker.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxEvidence caps the number of evidence files per analysis.
	MaxEvidence int
	// MaxFileBytes caps the size of any single file.
	MaxFileBytes int64
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    8192,
		Temperature:  0.2,
		MaxEvidence:  10,
		MaxFileBytes: 20 << 20,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1], got %v", c.Temperature)
	}
	if c.MaxEvidence < 0 {
		return fmt.Errorf("max evidence must not be negative, got %d", c.MaxEvidence)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileBytes)
	}
	return nil
}
