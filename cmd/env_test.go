package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
)

func testCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("db", "", "")
	c.Flags().String("lang", "", "")
	for k, v := range flags {
		require.NoError(t, c.Flags().Set(k, v))
	}
	c.SetContext(context.Background())
	return c
}

func TestOpenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UKPIP_STORE_URL", "")
	t.Setenv("UKPIP_LANG", "uk")
	t.Setenv("UKPIP_DB", "")

	t.Run("flags override env", func(t *testing.T) {
		db := filepath.Join(dir, "nested", "ukpip.db")
		e, err := openEnv(testCommand(t, map[string]string{"db": db, "lang": "fa"}))
		require.NoError(t, err)
		defer e.Close()

		assert.Equal(t, i18n.Farsi, e.lang)
		assert.FileExists(t, db)
		assert.Len(t, e.catalog.FormIDs(), 10)

		ctx := context.Background()
		_, err = e.ledger.Grant(ctx, "pip")
		require.NoError(t, err)
		v, err := e.store.KV().Get(ctx, kv.UnlockKey)
		require.NoError(t, err, "sqlite is the default answer store")
		assert.Contains(t, v, "pip")
	})

	t.Run("env language and memory store", func(t *testing.T) {
		t.Setenv("UKPIP_STORE_URL", "memory")
		e, err := openEnv(testCommand(t, map[string]string{"db": filepath.Join(dir, "mem.db")}))
		require.NoError(t, err)
		defer e.Close()

		assert.Equal(t, i18n.Ukrainian, e.lang)
		assert.IsType(t, &kv.Memory{}, e.kv)
	})

	t.Run("unknown store url", func(t *testing.T) {
		t.Setenv("UKPIP_STORE_URL", "ftp://nowhere")
		_, err := openEnv(testCommand(t, map[string]string{"db": filepath.Join(dir, "bad.db")}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported store url")
	})
}

func TestCheckoutFlowSimulated(t *testing.T) {
	t.Setenv("UKPIP_CHECKOUT_ENDPOINT", "")
	e, err := openEnv(testCommand(t, map[string]string{"db": filepath.Join(t.TempDir(), "ukpip.db")}))
	require.NoError(t, err)
	defer e.Close()

	flow, err := e.checkoutFlow()
	require.NoError(t, err)
	assert.True(t, flow.Simulated())
}

func TestModuleLookup(t *testing.T) {
	e, err := openEnv(testCommand(t, map[string]string{"db": filepath.Join(t.TempDir(), "ukpip.db")}))
	require.NoError(t, err)
	defer e.Close()

	entry, err := e.module("blue_badge")
	require.NoError(t, err)
	assert.Equal(t, "Blue Badge", entry.Name.Get(i18n.English))

	_, err = e.module("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip")
}

func TestResolveLogPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "ukpip.log")
	got, err := resolveLogPath(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
