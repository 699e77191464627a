package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner(t *testing.T) {
	s, err := NewSigner("secret", time.Minute)
	require.NoError(t, err)

	token, ref, err := s.Sign("pip")
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "pip", claims.ModuleID)
	assert.Equal(t, ref, claims.ID)

	other, err := NewSigner("other", time.Minute)
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = s.Verify(token[:len(token)-2])
	assert.ErrorIs(t, err, ErrInvalidState)

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSigner_RandomKey(t *testing.T) {
	a, err := NewSigner("", time.Minute)
	require.NoError(t, err)
	b, err := NewSigner("", time.Minute)
	require.NoError(t, err)

	token, _, err := a.Sign("uc")
	require.NoError(t, err)
	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestHTTPProvider(t *testing.T) {
	var got createSessionBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.ModuleID == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"No such price"}}`))
			return
		}
		if got.ModuleID == "html" {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
			return
		}
		w.Write([]byte(`{"sessionId":"cs_test_1","url":"https://pay.example/cs_test_1"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, 5*time.Second)
	sess, err := p.CreateSession(t.Context(), SessionRequest{
		ModuleID:   "pip",
		Lang:       i18n.Farsi,
		SuccessURL: "http://127.0.0.1/checkout/success",
		CancelURL:  "http://127.0.0.1/checkout/cancel",
	})
	require.NoError(t, err)
	assert.Equal(t, &Session{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, sess)
	assert.Equal(t, createSessionBody{
		ModuleID:   "pip",
		Lang:       "fa",
		Locale:     "auto",
		SuccessURL: "http://127.0.0.1/checkout/success",
		CancelURL:  "http://127.0.0.1/checkout/cancel",
	}, got)

	_, err = p.CreateSession(t.Context(), SessionRequest{ModuleID: "broken", Lang: i18n.English})
	assert.ErrorContains(t, err, "No such price")
	assert.Equal(t, "en", got.Locale)

	_, err = p.CreateSession(t.Context(), SessionRequest{ModuleID: "html", Lang: i18n.English})
	assert.ErrorContains(t, err, "returned 502")
}

func TestSimulatedProvider(t *testing.T) {
	sess, err := SimulatedProvider{}.CreateSession(t.Context(), SessionRequest{
		SuccessURL: "http://x/checkout/success?state=s&session_id=" + SessionIDPlaceholder,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sess.ID, "sim_"))
	assert.Equal(t, "http://x/checkout/success?state=s&session_id="+sess.ID, sess.URL)
}

func TestListener(t *testing.T) {
	signer, err := NewSigner("k", time.Minute)
	require.NoError(t, err)
	l := NewListener(signer)
	srv := httptest.NewServer(l.Handler())
	defer srv.Close()
	l.SetBase(srv.URL)

	resp, err := http.Get(srv.URL + "/checkout/success?state=garbage")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	state, ref, err := signer.Sign("uc")
	require.NoError(t, err)

	successURL := strings.ReplaceAll(l.SuccessURL(state), SessionIDPlaceholder, "cs_1")
	require.NoError(t, Visit(t.Context(), successURL))
	out := <-l.Results()
	assert.Equal(t, Outcome{Paid: true, ModuleID: "uc", SessionID: "cs_1", Ref: ref}, out)

	require.NoError(t, Visit(t.Context(), l.CancelURL(state)))
	out = <-l.Results()
	assert.False(t, out.Paid)
	assert.Empty(t, out.SessionID)

	resp, err = http.Post(srv.URL+"/checkout/success", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type cancellingProvider struct{}

func (cancellingProvider) Name() string { return "test" }

func (cancellingProvider) CreateSession(_ context.Context, req SessionRequest) (*Session, error) {
	return &Session{ID: "cs_cancel", URL: req.CancelURL}, nil
}

func newFlow(t *testing.T, p Provider) (*Flow, *unlock.Ledger, store.CheckoutRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ledger := unlock.New(kv.NewMemory(), content.MustLoad())
	cfg := DefaultConfig()
	cfg.Wait = 5 * time.Second
	f, err := NewFlow(cfg, p, ledger, st.CheckoutRepo())
	require.NoError(t, err)
	f.SetLogger(log.New(io.Discard, "", 0))
	return f, ledger, st.CheckoutRepo()
}

func visitor(t *testing.T) func(string) {
	return func(u string) {
		go func() {
			if err := Visit(context.Background(), u); err != nil {
				t.Errorf("visit: %v", err)
			}
		}()
	}
}

func TestFlow_Paid(t *testing.T) {
	f, ledger, sessions := newFlow(t, SimulatedProvider{})
	assert.True(t, f.Simulated())
	ctx := t.Context()

	rec, err := f.Run(ctx, content.FormChecker, i18n.English, visitor(t))
	require.NoError(t, err)
	assert.Equal(t, unlock.Record{Unlocked: true, UsesLeft: 5}, rec)
	assert.True(t, ledger.Paid(ctx))

	list, err := sessions.List(ctx, content.FormChecker)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, store.CheckoutPaid, list[0].Status)
	assert.Equal(t, "simulated", list[0].Provider)
	assert.NotNil(t, list[0].CompletedAt)
}

func TestFlow_Cancelled(t *testing.T) {
	f, ledger, sessions := newFlow(t, cancellingProvider{})
	ctx := t.Context()

	_, err := f.Run(ctx, "pip", i18n.Ukrainian, visitor(t))
	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, ledger.Unlocked(ctx, "pip"))
	assert.False(t, ledger.Paid(ctx))

	s, err := sessions.Get(ctx, "cs_cancel")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, store.CheckoutCancelled, s.Status)
	assert.Equal(t, "uk", s.Lang)
}

func TestFlow_Timeout(t *testing.T) {
	f, ledger, _ := newFlow(t, SimulatedProvider{})
	f.cfg.Wait = 20 * time.Millisecond

	var opened string
	_, err := f.Run(t.Context(), "uc", i18n.English, func(u string) { opened = u })
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, opened, "/checkout/success?state=")
	assert.False(t, ledger.Unlocked(t.Context(), "uc"))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Endpoint = "/api/checkout_sessions"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Wait = 0
	assert.Error(t, cfg.Validate())
}

func TestNewProvider(t *testing.T) {
	assert.Equal(t, "simulated", NewProvider(DefaultConfig()).Name())
	cfg := DefaultConfig()
	cfg.Endpoint = "https://example.com/api/checkout_sessions"
	assert.Equal(t, "http", NewProvider(cfg).Name())
}
