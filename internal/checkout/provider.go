// Package checkout sells module unlocks: it opens a hosted checkout session,
// waits for the browser to return to a local listener and records the
// outcome.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// SessionIDPlaceholder is replaced by the hosted checkout with the real
// session id when it redirects back.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// SessionRequest describes the checkout to open.
type SessionRequest struct {
	ModuleID   string
	Lang       i18n.Lang
	SuccessURL string
	CancelURL  string
}

// Session is an opened checkout.
type Session struct {
	ID  string
	URL string
}

// Provider opens checkout sessions.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	Name() string
}

// Locale is the checkout page locale hint for l.
func Locale(l i18n.Lang) string {
	if l == i18n.Farsi {
		return "auto"
	}
	return "en"
}

// HTTPProvider talks to a checkout backend over JSON.
type HTTPProvider struct {
	endpoint   string
	httpClient *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider returns a provider posting to endpoint.
func NewHTTPProvider(endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns "http".
func (p *HTTPProvider) Name() string { return "http" }

type createSessionBody struct {
	ModuleID   string `json:"moduleId"`
	Lang       string `json:"lang"`
	Locale     string `json:"locale"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type createSessionReply struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession posts the request and decodes {sessionId, url} or
// {error: {message}}.
func (p *HTTPProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	body, err := json.Marshal(createSessionBody{
		ModuleID:   req.ModuleID,
		Lang:       string(req.Lang),
		Locale:     Locale(req.Lang),
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read checkout response: %w", err)
	}

	var reply createSessionReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("checkout backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if reply.Error != nil {
		return nil, fmt.Errorf("checkout backend: %s", reply.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout backend returned %d", resp.StatusCode)
	}
	if reply.SessionID == "" || reply.URL == "" {
		return nil, fmt.Errorf("checkout backend returned no session")
	}
	return &Session{ID: reply.SessionID, URL: reply.URL}, nil
}

// SimulatedProvider is the in-process demo gateway: its session URL points
// straight back at the success URL.
type SimulatedProvider struct{}

var _ Provider = SimulatedProvider{}

// Name returns "simulated".
func (SimulatedProvider) Name() string { return "simulated" }

// CreateSession returns a fresh session whose URL is req.SuccessURL.
func (SimulatedProvider) CreateSession(_ context.Context, req SessionRequest) (*Session, error) {
	id := "sim_" + uuid.NewString()
	return &Session{
		ID:  id,
		URL: strings.ReplaceAll(req.SuccessURL, SessionIDPlaceholder, id),
	}, nil
}

// NewProvider picks the HTTP backend when an endpoint is configured and the
// simulated gateway otherwise.
func NewProvider(cfg Config) Provider {
	if cfg.Endpoint == "" {
		return SimulatedProvider{}
	}
	return NewHTTPProvider(cfg.Endpoint, cfg.HTTPTimeout)
}

// Visit follows a checkout URL the way a browser would. The simulated
// gateway uses it to complete a session without a browser.
func Visit(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("visit %s: status %d", rawURL, resp.StatusCode)
	}
	return nil
}
