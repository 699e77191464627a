package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no build for this platform")
)

const (
	binaryName     = "ukpip"
	checksumsAsset = "SHA256SUMS"

	maxArchiveSize   = 200 << 20
	maxChecksumsSize = 1 << 20
)

// Stage names a step of Update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// Progress is reported as Update runs. Received and Total count archive bytes
// during StageDownload; Total is zero when the release does not state a size.
type Progress struct {
	Stage    Stage
	Version  string
	Received int64
	Total    int64
}

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release, which must be newer than CurrentVersion.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// Update downloads the release archive for this platform, verifies it
// against the release's SHA256SUMS and swaps it in for the running binary.
// It returns the installed tag.
func (c *Checker) Update(ctx context.Context, in UpdateInput, report func(Progress)) (string, error) {
	if report == nil {
		report = func(Progress) {}
	}
	if in.CurrentVersion == "" || in.CurrentVersion == "(devel)" {
		return "", ErrDevBuild
	}

	report(Progress{Stage: StageCheck})
	rel, err := c.fetchRelease(ctx, in.TargetVersion)
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if in.TargetVersion == "" && !newer(rel.TagName, in.CurrentVersion) {
		return "", ErrAlreadyLatest
	}

	name, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}
	archive, ok := rel.asset(name)
	if !ok {
		return "", fmt.Errorf("%w: %s not in %s", ErrNoAsset, name, rel.TagName)
	}
	sumsAsset, ok := rel.asset(checksumsAsset)
	if !ok {
		return "", fmt.Errorf("%w: %s not in %s", ErrChecksum, checksumsAsset, rel.TagName)
	}

	var sums strings.Builder
	if _, err := c.download(ctx, sumsAsset.URL, &sums, maxChecksumsSize, nil); err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums.String())[name]
	if !ok {
		return "", fmt.Errorf("%w: no entry for %s", ErrChecksum, name)
	}

	target, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}

	// The archive lands next to the binary so the final rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".ukpip-download-*")
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	h := sha256.New()
	_, err = c.download(ctx, archive.URL, io.MultiWriter(tmp, h), maxArchiveSize, func(n int64) {
		report(Progress{Stage: StageDownload, Version: rel.TagName, Received: n, Total: archive.Size})
	})
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}

	report(Progress{Stage: StageVerify, Version: rel.TagName})
	if got := hex.EncodeToString(h.Sum(nil)); !strings.EqualFold(got, want) {
		return "", fmt.Errorf("%w: %s has sha256 %s, want %s", ErrChecksum, name, got, want)
	}

	report(Progress{Stage: StageInstall, Version: rel.TagName})
	bin, err := extractBinary(tmp, name)
	if err != nil {
		return "", fmt.Errorf("extract binary: %w", err)
	}
	if err := install(bin, target); err != nil {
		return "", fmt.Errorf("install: %w", err)
	}

	report(Progress{Stage: StageDone, Version: rel.TagName})
	return rel.TagName, nil
}

// assetFor returns the archive name published for a platform, for example
// ukpip_linux_amd64.tar.gz or ukpip_windows_arm64.zip.
func assetFor(goos, goarch string) (string, error) {
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux", "darwin":
		return fmt.Sprintf("%s_%s_%s.tar.gz", binaryName, goos, goarch), nil
	case "windows":
		return fmt.Sprintf("%s_%s_%s.zip", binaryName, goos, goarch), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// download copies the body at url into w, failing once more than limit bytes
// arrive. onProgress, when set, sees the running byte count.
func (c *Checker) download(ctx context.Context, url string, w io.Writer, limit int64, onProgress func(int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if onProgress != nil {
		w = &progressWriter{w: w, fn: onProgress}
	}
	n, err := io.Copy(w, io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return n, err
	}
	if n > limit {
		return n, fmt.Errorf("%s is larger than %d bytes", url, limit)
	}
	return n, nil
}

type progressWriter struct {
	w  io.Writer
	n  int64
	fn func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.n += int64(n)
	p.fn(p.n)
	return n, err
}

// parseChecksums reads sha256sum output. Both "hash  name" and the binary
// mode "hash *name" forms are accepted.
func parseChecksums(data string) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		sums[strings.TrimPrefix(parts[1], "*")] = parts[0]
	}
	return sums
}

// extractBinary pulls the ukpip executable out of the downloaded archive.
func extractBinary(f *os.File, asset string) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if strings.HasSuffix(asset, ".zip") {
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return fromZip(f, info.Size(), binaryName+".exe")
	}
	return fromTarGz(f, binaryName)
}

func fromTarGz(r io.Reader, name string) ([]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(io.LimitReader(tr, maxArchiveSize))
		}
	}
}

func fromZip(r io.ReaderAt, size int64, name string) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, zf := range zr.File {
		if filepath.Base(zf.Name) != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, maxArchiveSize))
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// install replaces target with bin, keeping target's permissions. The old
// binary is moved aside first so a failed swap can be rolled back; Windows
// refuses to overwrite a running executable but allows renaming it.
func install(bin []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	next := target + ".new"
	if err := os.WriteFile(next, bin, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write new binary: %w", err)
	}
	// WriteFile honours the umask.
	if err := os.Chmod(next, info.Mode().Perm()); err != nil {
		_ = os.Remove(next)
		return fmt.Errorf("chmod: %w", err)
	}

	old := target + ".old"
	_ = os.Remove(old)
	if err := os.Rename(target, old); err != nil {
		_ = os.Remove(next)
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(next, target); err != nil {
		_ = os.Rename(old, target)
		_ = os.Remove(next)
		return fmt.Errorf("swap in new binary: %w", err)
	}
	// Fails on Windows while the old binary is still running; the next
	// update removes it.
	_ = os.Remove(old)
	return nil
}
