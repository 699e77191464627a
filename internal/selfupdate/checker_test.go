package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/sfmahdi38-cmd/ukpip-site/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		latest  string
		current string
		want    bool
	}{
		{"newer release", "v1.3.0", "v1.2.0", true},
		{"same release", "v1.2.0", "v1.2.0", false},
		{"older release", "v1.1.0", "v1.2.0", false},
		{"current without prefix", "v1.3.0", "1.2.0", true},
		{"dev build", "v1.3.0", "(devel)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, tt.latest)
			c := NewChecker(WithBaseURL(server.URL))

			res, err := c.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, tt.latest, res.LatestVersion)
			assert.Equal(t, "https://example.com/"+tt.latest, res.ReleaseURL)
		})
	}
}

func TestCheck_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestCachedRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.json")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	server := releaseServer(t, "v2.0.0")
	c := NewChecker(WithBaseURL(server.URL), withClock(func() time.Time { return now }))

	latest, stale := c.Cached(path, "v1.0.0")
	assert.Empty(t, latest)
	assert.True(t, stale, "missing cache is stale")

	require.NoError(t, c.Refresh(context.Background(), path, "v1.0.0"))

	latest, stale = c.Cached(path, "v1.0.0")
	assert.Equal(t, "v2.0.0", latest)
	assert.False(t, stale)

	latest, _ = c.Cached(path, "v2.0.0")
	assert.Empty(t, latest, "no note when already on the latest release")

	now = now.Add(25 * time.Hour)
	_, stale = c.Cached(path, "v1.0.0")
	assert.True(t, stale)
}
