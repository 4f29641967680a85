package goose

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPStatusError reports a non-2xx response from the dataset host.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("failed to retrieve %s: HTTP status %d", e.URL, e.StatusCode)
}

// Fetcher downloads the dataset over HTTP.
type Fetcher struct {
	client *http.Client
	out    io.Writer
}

func NewFetcher(timeout time.Duration, out io.Writer) *Fetcher {
	if out == nil {
		out = io.Discard
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{IdleConnTimeout: 15 * time.Second},
		},
		out: out,
	}
}

// Extract streams url into path, creating parent directories, and returns path.
func (f *Fetcher) Extract(ctx context.Context, url, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	fmt.Fprintf(f.out, "File successfully downloaded to %s\n", path)
	return path, nil
}
