// Package selfupdate checks GitHub releases for a newer ukpip and replaces the
// running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "sfmahdi38-cmd"
	defaultRepo    = "ukpip-site"
	defaultAPI     = "https://api.github.com"
	defaultTimeout = 5 * time.Second

	// checkInterval limits background checks to one per day.
	checkInterval = 24 * time.Hour
)

// Checker talks to the GitHub releases API.
type Checker struct {
	owner    string
	repo     string
	baseURL  string
	client   *http.Client
	execPath func() (string, error)
	now      func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) { c.execPath = f }
}

func withClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker returns a Checker for the ukpip repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultAPI,
		client:   &http.Client{Timeout: defaultTimeout},
		execPath: executable,
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func executable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

type release struct {
	TagName string         `json:"tag_name"`
	HTMLURL string         `json:"html_url"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
	Size int64  `json:"size"`
}

func (r *release) asset(name string) (releaseAsset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return releaseAsset{}, false
}

// Check asks GitHub for the latest release and compares it with input.Version.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.fetchRelease(ctx, "")
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		UpdateAvailable: newer(rel.TagName, input.Version),
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
	}, nil
}

// fetchRelease loads the release tagged tag, or the latest one when tag is empty.
func (c *Checker) fetchRelease(ctx context.Context, tag string) (*release, error) {
	path := "latest"
	if tag != "" {
		path = "tags/" + canonical(tag)
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/%s", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release at %s has no tag", url)
	}
	return &rel, nil
}

// newer reports whether latest is a higher semantic version than current.
// Development builds never report an update.
func newer(latest, current string) bool {
	latest, current = canonical(latest), canonical(current)
	if !semver.IsValid(latest) || !semver.IsValid(current) {
		return false
	}
	return semver.Compare(latest, current) > 0
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

type cacheFile struct {
	CheckedAt time.Time `json:"checked_at"`
	Latest    string    `json:"latest"`
}

// Cached returns the newest version recorded in the cache at path when it is
// newer than current, and whether the cache is due for a refresh.
func (c *Checker) Cached(path, current string) (latest string, stale bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", true
	}
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return "", true
	}
	stale = c.now().Sub(cf.CheckedAt) > checkInterval
	if newer(cf.Latest, current) {
		return cf.Latest, stale
	}
	return "", stale
}

// Refresh checks for a new release and records the answer at path.
func (c *Checker) Refresh(ctx context.Context, path, current string) error {
	res, err := c.Check(ctx, &CheckInput{Version: current})
	if err != nil {
		return err
	}
	data, err := json.Marshal(cacheFile{CheckedAt: c.now(), Latest: res.LatestVersion})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
