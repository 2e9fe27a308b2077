// Package tebex implements the remote queue client over the Tebex plugin API.
package tebex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/tebexd/internal/ports/secondary"
)

const (
	// DefaultBaseURL is the public plugin API endpoint.
	DefaultBaseURL = "https://plugin.tebex.io"
	// DefaultTimeout matches the plugin's default request timeout.
	DefaultTimeout = 30 * time.Second

	secretHeader = "X-Tebex-Secret"

	// maxErrorBody caps how much of an error response is kept for logs.
	maxErrorBody = 512
)

// errNoContent marks a 204 response where a body was expected.
var errNoContent = errors.New("no content")

// Client is a typed wrapper over the plugin API. It holds no state beyond
// its configuration and never retries.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client authenticated with the shared secret.
func NewClient(secret string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request. A nil out discards the body. Failures are
// *secondary.TransportError; a 204 where out expects a body is errNoContent.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &secondary.TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &secondary.TransportError{Op: op, Err: err}
	}
	req.Header.Set(secretHeader, c.secret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &secondary.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		if out != nil {
			return errNoContent
		}
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &secondary.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &secondary.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func userPath(principal string) string {
	return "/user/" + url.PathEscape(principal)
}
