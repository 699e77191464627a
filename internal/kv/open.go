package kv

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Open selects a backend from url. An empty url or "sqlite" returns fallback;
// "memory" returns a fresh Memory store; redis:// and mongodb:// URLs connect to
// those servers. The returned closer releases any connection Open created.
func Open(ctx context.Context, url string, fallback Store) (Store, io.Closer, error) {
	switch {
	case url == "" || url == "sqlite":
		if fallback == nil {
			return nil, nil, fmt.Errorf("kv: no default store configured")
		}
		return fallback, nopCloser{}, nil
	case url == "memory":
		return NewMemory(), nopCloser{}, nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		r, err := OpenRedis(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		m, err := OpenMongo(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	default:
		return nil, nil, fmt.Errorf("kv: unsupported store url %q", url)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
