// Package checker scores a completed form and suggests improvements.
package checker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/llm"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

var (
	ErrUnknownFormType = errors.New("unknown form type")
	ErrNoForm          = errors.New("no form file")
	ErrTooManyFiles    = errors.New("too many evidence files")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

var fences = strings.NewReplacer("```json", "", "```", "")

// Input is one analysis request.
type Input struct {
	FormType string
	Form     llm.Attachment
	Evidence []llm.Attachment
	Lang     i18n.Lang
}

// Checker runs analyses, charging one use of the form_checker unlock for
// each successful one.
type Checker struct {
	provider  llm.Provider
	ledger    *unlock.Ledger
	formTypes []string
	cfg       Config
}

// New returns a Checker. formTypes lists the accepted form types, usually
// the catalog's question-flow module ids. ledger may be nil to skip the
// unlock check.
func New(provider llm.Provider, ledger *unlock.Ledger, formTypes []string, cfg Config) *Checker {
	return &Checker{provider: provider, ledger: ledger, formTypes: formTypes, cfg: cfg}
}

// FormTypes returns the accepted form types.
func (c *Checker) FormTypes() []string {
	return append([]string(nil), c.formTypes...)
}

// Load reads the form and evidence files from disk into an Input.
func (c *Checker) Load(formType, formPath string, evidencePaths []string, l i18n.Lang) (Input, error) {
	in := Input{FormType: formType, Lang: l}
	if strings.TrimSpace(formPath) == "" {
		return in, ErrNoForm
	}
	if len(evidencePaths) > c.cfg.MaxEvidence {
		return in, fmt.Errorf("%w: %d given, at most %d", ErrTooManyFiles, len(evidencePaths), c.cfg.MaxEvidence)
	}
	form, err := LoadFile(formPath, FormExtensions, c.cfg.MaxFileBytes)
	if err != nil {
		return in, err
	}
	in.Form = form
	for _, p := range evidencePaths {
		a, err := LoadFile(p, EvidenceExtensions, c.cfg.MaxFileBytes)
		if err != nil {
			return in, err
		}
		in.Evidence = append(in.Evidence, a)
	}
	return in, nil
}

// Analyze sends the files to the model and returns its report.
func (c *Checker) Analyze(ctx context.Context, in Input) (*Report, error) {
	if !slices.Contains(c.formTypes, in.FormType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormType, in.FormType)
	}
	if len(in.Form.Data) == 0 {
		return nil, ErrNoForm
	}
	if c.ledger != nil {
		rec, err := c.ledger.Status(ctx, content.FormChecker)
		if err != nil {
			return nil, err
		}
		if !rec.Unlocked {
			return nil, unlock.ErrLocked
		}
		if rec.UsesLeft <= 0 {
			return nil, unlock.ErrNoUsesLeft
		}
	}

	names := make([]string, 0, len(in.Evidence))
	for _, e := range in.Evidence {
		names = append(names, e.Name)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeFormCheck)
	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(in.FormType, in.Form.Name, names, in.Lang)},
		},
		Attachments: append([]llm.Attachment{in.Form}, in.Evidence...),
		Schema:      ReportSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("form analysis failed: %w", err)
	}

	var report Report
	raw := strings.TrimSpace(fences.Replace(resp.Text()))
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to parse form analysis: %w", err)
	}

	if c.ledger != nil {
		if _, err := c.ledger.Consume(ctx, content.FormChecker); err != nil {
			return nil, err
		}
	}
	return &report, nil
}
