package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
)

// Outcome is what the browser reported when it came back.
type Outcome struct {
	Paid      bool
	ModuleID  string
	SessionID string
	Ref       string
}

// Listener receives the checkout return redirects on the loopback interface.
type Listener struct {
	signer  *Signer
	router  *mux.Router
	results chan Outcome

	srv  *http.Server
	base string
}

// NewListener builds the routes without binding a socket.
func NewListener(signer *Signer) *Listener {
	l := &Listener{
		signer:  signer,
		results: make(chan Outcome, 4),
	}
	r := mux.NewRouter()
	r.HandleFunc("/checkout/success", l.handle(true)).Methods(http.MethodGet)
	r.HandleFunc("/checkout/cancel", l.handle(false)).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	l.router = r
	return l
}

// Handler exposes the routes.
func (l *Listener) Handler() http.Handler { return l.router }

// Start binds addr and serves in the background.
func (l *Listener) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	l.base = "http://" + ln.Addr().String()
	l.srv = &http.Server{Handler: l.router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("checkout: listener stopped: %v", err)
		}
	}()
	return nil
}

// SetBase sets the public base URL, for listeners served by someone else.
func (l *Listener) SetBase(base string) { l.base = base }

// SuccessURL is the return URL for a completed payment.
func (l *Listener) SuccessURL(state string) string {
	return l.base + "/checkout/success?state=" + url.QueryEscape(state) + "&session_id=" + SessionIDPlaceholder
}

// CancelURL is the return URL for an abandoned payment.
func (l *Listener) CancelURL(state string) string {
	return l.base + "/checkout/cancel?state=" + url.QueryEscape(state)
}

// Results delivers one Outcome per verified return.
func (l *Listener) Results() <-chan Outcome { return l.results }

// Close stops the server.
func (l *Listener) Close() error {
	if l.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.srv.Shutdown(ctx)
}

func (l *Listener) handle(paid bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		claims, err := l.signer.Verify(q.Get("state"))
		if err != nil {
			http.Error(w, "invalid checkout state", http.StatusBadRequest)
			return
		}
		out := Outcome{
			Paid:      paid,
			ModuleID:  claims.ModuleID,
			SessionID: q.Get("session_id"),
			Ref:       claims.ID,
		}
		if out.SessionID == SessionIDPlaceholder {
			out.SessionID = ""
		}
		select {
		case l.results <- out:
		default:
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if paid {
			fmt.Fprint(w, returnPage("Payment received. You can close this tab and return to the terminal."))
		} else {
			fmt.Fprint(w, returnPage("Payment cancelled. You can close this tab and return to the terminal."))
		}
	}
}

func returnPage(msg string) string {
	return "<!doctype html><html><head><meta charset=\"utf-8\"><title>ukpip</title></head><body><p>" +
		msg + "</p></body></html>"
}
