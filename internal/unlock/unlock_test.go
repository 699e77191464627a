package unlock

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*Ledger, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	l := New(store, content.MustLoad())
	l.SetLogger(log.New(io.Discard, "", 0))
	return l, store
}

func TestGrant(t *testing.T) {
	ctx := t.Context()
	l, store := newLedger(t)

	assert.False(t, l.Unlocked(ctx, "pip"))

	rec, err := l.Grant(ctx, "pip")
	require.NoError(t, err)
	assert.Equal(t, Record{Unlocked: true, UsesLeft: 1}, rec)

	rec, err = l.Grant(ctx, content.FormChecker)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.UsesLeft)

	assert.True(t, l.Unlocked(ctx, "pip"))
	assert.False(t, l.Unlocked(ctx, "uc"))

	blob, err := store.Get(ctx, kv.UnlockKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pip":{"unlocked":true,"usesLeft":1},"form_checker":{"unlocked":true,"usesLeft":5}}`, blob)
}

func TestConsume(t *testing.T) {
	ctx := t.Context()
	l, _ := newLedger(t)

	_, err := l.Consume(ctx, content.FormChecker)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = l.Grant(ctx, content.FormChecker)
	require.NoError(t, err)
	for want := 4; want >= 0; want-- {
		rec, err := l.Consume(ctx, content.FormChecker)
		require.NoError(t, err)
		assert.Equal(t, want, rec.UsesLeft)
	}
	_, err = l.Consume(ctx, content.FormChecker)
	assert.ErrorIs(t, err, ErrNoUsesLeft)

	rec, err := l.Status(ctx, content.FormChecker)
	require.NoError(t, err)
	assert.True(t, rec.Unlocked)

	// Buying again tops the grant back up.
	rec, err = l.Grant(ctx, content.FormChecker)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.UsesLeft)
}

func TestCorruptLedger(t *testing.T) {
	ctx := t.Context()
	l, store := newLedger(t)
	require.NoError(t, store.Set(ctx, kv.UnlockKey, "{not json"))

	all, err := l.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = l.Grant(ctx, "uc")
	require.NoError(t, err)
	assert.True(t, l.Unlocked(ctx, "uc"))
}

func TestRevoke(t *testing.T) {
	ctx := t.Context()
	l, _ := newLedger(t)
	_, err := l.Grant(ctx, "uc")
	require.NoError(t, err)
	require.NoError(t, l.Revoke(ctx, "uc"))
	assert.False(t, l.Unlocked(ctx, "uc"))
}

func TestPaid(t *testing.T) {
	ctx := t.Context()
	l, _ := newLedger(t)
	assert.False(t, l.Paid(ctx))
	require.NoError(t, l.MarkPaid(ctx))
	assert.True(t, l.Paid(ctx))
}

type brokenStore struct{ kv.Store }

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func TestReadFailure(t *testing.T) {
	l := New(brokenStore{kv.NewMemory()}, nil)
	l.SetLogger(log.New(io.Discard, "", 0))
	ctx := t.Context()

	_, err := l.Grant(ctx, "pip")
	assert.ErrorContains(t, err, "disk on fire")
	assert.False(t, l.Unlocked(ctx, "pip"))
	assert.False(t, l.Paid(ctx))
	assert.Equal(t, content.DefaultUses, l.Uses("pip"))
}
