// Package llm wraps the model vendors behind one Provider interface, with
// retry, request logging and JSON schema validation layered on top.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates a completion for a Request.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the output is validated JSON; otherwise Content
	// holds the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ErrAttachmentsUnsupported is returned by providers that cannot accept
// file parts.
var ErrAttachmentsUnsupported = errors.New("provider does not accept file attachments")

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is usually a single user message holding the prompt.
	Messages []Message

	// Attachments are sent alongside the last user message.
	Attachments []Attachment

	// Schema, when set, asks the provider for structured JSON output and
	// validates the result.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero leaves the vendor default.
	Temperature float64
}

// Attachment is an uploaded document or image.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name is kebab-case, e.g. "form-report". It doubles as the cache key
	// for the compiled validator.
	Name        string
	Description string

	// Definition is a JSON Schema document.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
