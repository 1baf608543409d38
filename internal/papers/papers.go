// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers downloads open-access PDFs and extracts their text so
// ingestion can embed full papers instead of titles and abstracts.
package papers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yuga-i2/Researchmate/internal/httputil"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

const defaultDownloadTimeout = 15 * time.Second

var unsafeChars = regexp.MustCompile(`[^0-9a-zA-Z\-_. ]+`)

// SafeFilename returns a filesystem-safe filename derived from s:
// characters outside alphanumerics, dash, underscore, dot and space are
// replaced with underscores, then spaces become underscores.
func SafeFilename(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

// Fetcher downloads PDFs into a local directory, throttled against
// provider hosts.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	dir     string
	agent   string
}

// NewFetcher builds a Fetcher from config. Downloads are rate-limited to
// cfg.RequestsPerSecond (default 1/s) and bounded by cfg.Timeout
// (default 15s).
func NewFetcher(cfg types.PapersConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join("data", "papers")
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		dir:     dir,
		agent:   cfg.UserAgent,
	}
}

// Download fetches pdfURL into the papers directory as <id>.pdf and
// returns the local path. An existing file is reused without a request.
// The download goes to a temp file first and is renamed on success.
func (f *Fetcher) Download(ctx context.Context, pdfURL, id string) (string, error) {
	if pdfURL == "" {
		return "", fmt.Errorf("no PDF URL for %q", id)
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating papers directory: %w", err)
	}

	path := filepath.Join(f.dir, SafeFilename(id)+".pdf")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.agent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pdfURL)
	}

	tmpFile, err := os.CreateTemp(f.dir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}

// Fetch downloads the record's PDF and fills rec.Text with the extracted
// page text. Records without a PDF URL, failed downloads, and PDFs with
// no extractable text all return an error; the caller decides whether
// that degrades or drops the record.
func (f *Fetcher) Fetch(ctx context.Context, rec *types.PaperRecord) error {
	path, err := f.Download(ctx, rec.PDFURL, rec.ID)
	if err != nil {
		return err
	}

	text, err := ExtractText(path)
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text extracted from %s", path)
	}

	rec.Text = types.FieldValue{text}
	return nil
}
