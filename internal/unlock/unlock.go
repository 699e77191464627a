// Package unlock tracks which modules the user has paid for and how many
// uses they have left.
package unlock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
)

var (
	// ErrLocked is returned when a module has never been unlocked.
	ErrLocked = errors.New("module is locked")
	// ErrNoUsesLeft is returned when an unlocked module has used up its grant.
	ErrNoUsesLeft = errors.New("no uses left")
)

// Record is the persisted state of one module.
type Record struct {
	Unlocked bool `json:"unlocked"`
	UsesLeft int  `json:"usesLeft"`
}

// Ledger reads and writes unlock records in a kv.Store. Records for all
// modules share one JSON object under kv.UnlockKey.
type Ledger struct {
	store   kv.Store
	catalog *content.Catalog
	logger  *log.Logger

	mu sync.Mutex
}

// New returns a Ledger backed by store. The catalog supplies the number of
// uses each module grants.
func New(store kv.Store, catalog *content.Catalog) *Ledger {
	return &Ledger{store: store, catalog: catalog, logger: log.Default()}
}

// SetLogger routes warnings about unreadable records to l.
func (l *Ledger) SetLogger(logger *log.Logger) {
	l.logger = logger
}

// Uses returns how many uses a purchase of moduleID grants.
func (l *Ledger) Uses(moduleID string) int {
	if l.catalog != nil {
		if e, err := l.catalog.Entry(moduleID); err == nil {
			return e.Uses
		}
	}
	return content.DefaultUses
}

// Grant unlocks moduleID, replacing any previous record with a fresh grant.
func (l *Ledger) Grant(ctx context.Context, moduleID string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read(ctx)
	if err != nil {
		return Record{}, err
	}
	rec := Record{Unlocked: true, UsesLeft: l.Uses(moduleID)}
	all[moduleID] = rec
	if err := l.write(ctx, all); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Status returns the record for moduleID; the zero Record means locked.
func (l *Ledger) Status(ctx context.Context, moduleID string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read(ctx)
	if err != nil {
		return Record{}, err
	}
	return all[moduleID], nil
}

// All returns every stored record.
func (l *Ledger) All(ctx context.Context) (map[string]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

// Unlocked reports whether moduleID has been unlocked. Read failures count
// as locked.
func (l *Ledger) Unlocked(ctx context.Context, moduleID string) bool {
	rec, err := l.Status(ctx, moduleID)
	if err != nil {
		l.logger.Printf("unlock: read status for %s: %v", moduleID, err)
		return false
	}
	return rec.Unlocked
}

// Consume takes one use of moduleID and returns the updated record.
func (l *Ledger) Consume(ctx context.Context, moduleID string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read(ctx)
	if err != nil {
		return Record{}, err
	}
	rec := all[moduleID]
	if !rec.Unlocked {
		return rec, fmt.Errorf("%s: %w", moduleID, ErrLocked)
	}
	if rec.UsesLeft <= 0 {
		return rec, fmt.Errorf("%s: %w", moduleID, ErrNoUsesLeft)
	}
	rec.UsesLeft--
	all[moduleID] = rec
	if err := l.write(ctx, all); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Revoke forgets moduleID.
func (l *Ledger) Revoke(ctx context.Context, moduleID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read(ctx)
	if err != nil {
		return err
	}
	delete(all, moduleID)
	return l.write(ctx, all)
}

// MarkPaid records that a checkout completed.
func (l *Ledger) MarkPaid(ctx context.Context) error {
	return l.store.Set(ctx, kv.PaidKey, "true")
}

// Paid reports whether any checkout has completed.
func (l *Ledger) Paid(ctx context.Context) bool {
	v, err := l.store.Get(ctx, kv.PaidKey)
	if err != nil {
		return false
	}
	return v == "true"
}

// read loads all records. A missing or corrupt blob yields an empty ledger.
func (l *Ledger) read(ctx context.Context) (map[string]Record, error) {
	blob, err := l.store.Get(ctx, kv.UnlockKey)
	if errors.Is(err, kv.ErrNotFound) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read unlock records: %w", err)
	}
	var all map[string]Record
	if err := json.Unmarshal([]byte(blob), &all); err != nil || all == nil {
		if err != nil {
			l.logger.Printf("unlock: stored records are unreadable, starting fresh: %v", err)
		}
		return map[string]Record{}, nil
	}
	return all, nil
}

func (l *Ledger) write(ctx context.Context, all map[string]Record) error {
	blob, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode unlock records: %w", err)
	}
	if err := l.store.Set(ctx, kv.UnlockKey, string(blob)); err != nil {
		return fmt.Errorf("save unlock records: %w", err)
	}
	return nil
}
