package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Set(ctx, "form-progress-pip", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.KV().Get(ctx, "form-progress-pip")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != `[]` {
		t.Errorf("got %q, want []", got)
	}
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	repo := s.KV()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("get missing: got %v, want ErrNotFound", err)
	}

	if err := repo.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "a", "2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2" {
		t.Errorf("got %q, want 2", got)
	}

	if err := repo.Set(ctx, "form-progress-uc", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	keys, err := repo.Keys(ctx, "form-progress-")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "form-progress-uc" {
		t.Errorf("keys = %v", keys)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "a"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("get after delete: %v", err)
	}
	if err := repo.Delete(ctx, "a"); err != nil {
		t.Errorf("delete missing key: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Fatalf("sequence not increasing: %d after %d", n, last)
		}
		last = n
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "guidance", InputTokens: 100, OutputTokens: 40, LatencyMs: 200, Success: true, RequestBody: `{"q":1}`, ResponseBody: `{"a":1}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "guidance", InputTokens: 50, OutputTokens: 10, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "form-check", InputTokens: 900, LatencyMs: 1000, Success: false, ErrorMessage: "quota"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].Purpose != "form-check" || all[0].ErrorMessage != "quota" || all[0].Success {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "guidance"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].InputTokens != 50 {
		t.Errorf("limited = %+v", limited)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].ID != all[0].ID {
		t.Errorf("after = %+v", after)
	}

	oldest := all[2]
	got, err := repo.GetLLMEvent(ctx, oldest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != `{"q":1}` || got.ResponseBody != `{"a":1}` {
		t.Errorf("get = %+v", got)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("byPurpose = %+v", byPurpose)
	}
	g := byPurpose[0]
	if g.Purpose != "guidance" || g.Calls != 2 || g.InputTokens != 150 || g.OutputTokens != 50 || g.AvgLatencyMs != 300 {
		t.Errorf("guidance usage = %+v", g)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("byModel = %+v", byModel)
	}
}

func TestCheckoutSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.CheckoutRepo()
	ctx := context.Background()

	sess := &CheckoutSession{ID: "cs_1", ModuleID: "pip", Lang: "fa", Provider: "simulated"}
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Status != CheckoutPending || sess.Sequence == 0 {
		t.Errorf("defaults not applied: %+v", sess)
	}

	got, err := repo.Get(ctx, "cs_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ModuleID != "pip" || got.CompletedAt != nil {
		t.Fatalf("get = %+v", got)
	}

	if err := repo.Complete(ctx, "cs_1", CheckoutPaid); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := repo.Complete(ctx, "cs_1", CheckoutCancelled); !errors.Is(err, ErrNotFound) {
		t.Errorf("second complete: got %v, want ErrNotFound", err)
	}
	if err := repo.Complete(ctx, "nope", CheckoutPaid); !errors.Is(err, ErrNotFound) {
		t.Errorf("complete unknown: got %v, want ErrNotFound", err)
	}

	got, err = repo.Get(ctx, "cs_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != CheckoutPaid || got.CompletedAt == nil {
		t.Errorf("after complete = %+v", got)
	}

	if err := repo.Create(ctx, &CheckoutSession{ID: "cs_2", ModuleID: "uc", Lang: "en", Provider: "http"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "cs_2" {
		t.Errorf("list = %+v", list)
	}
	pip, err := repo.List(ctx, "pip")
	if err != nil {
		t.Fatalf("list pip: %v", err)
	}
	if len(pip) != 1 {
		t.Errorf("list pip = %+v", pip)
	}

	if missing, err := repo.Get(ctx, "nope"); err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("UKPIP_DB", filepath.Join(dir, "nested", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "nested", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("UKPIP_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "ukpip", "ukpip.db") {
		t.Errorf("path = %q", p)
	}
}
