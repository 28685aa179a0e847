// Package fetch retrieves contract documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/thiruselvaa/odcs-converter/internal/codec"
	"github.com/thiruselvaa/odcs-converter/internal/config"
)

// StatusError reports a non-2xx response from the remote host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// NotFound reports whether the remote host returned 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client fetches remote documents with a bounded timeout and response size.
type Client struct {
	http      *http.Client
	userAgent string
	maxSize   int64
}

// New builds a client from fetch configuration.
func New(cfg config.FetchConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		maxSize:   cfg.MaxResponseSize,
	}
}

// Document downloads a contract document and reports its format. The format
// comes from the URL path extension when present, otherwise from the
// response Content-Type, defaulting to YAML.
func (c *Client) Document(ctx context.Context, rawURL string) ([]byte, codec.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if int64(len(data)) > c.maxSize {
		return nil, "", fmt.Errorf("fetch %s: response exceeds %d bytes", rawURL, c.maxSize)
	}

	return data, detectFormat(rawURL, resp.Header.Get("Content-Type")), nil
}

func detectFormat(rawURL, contentType string) codec.Format {
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := codec.DetectFormat(u.Path); err == nil {
			return f
		}
	}
	if strings.Contains(contentType, "json") {
		return codec.FormatJSON
	}
	return codec.FormatYAML
}
