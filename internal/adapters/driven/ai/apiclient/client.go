// Package apiclient is the JSON-over-HTTP transport shared by the OpenAI and
// Ollama adapters.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// errorPreviewLength bounds the body text quoted in a StatusError.
const errorPreviewLength = 200

// Client sends JSON requests to a provider API.
type Client struct {
	provider string
	baseURL  string
	header   http.Header
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBearerToken sends token in the Authorization header. Empty tokens are ignored.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// New creates a client for provider rooted at baseURL.
// provider prefixes every error message.
func New(provider, baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		header:   http.Header{"Accept": []string{"application/json"}},
		http:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends in as JSON and decodes the response into out. out may be nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", c.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Get decodes the response of a GET request into out. out may be nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	return c.do(req, out)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(req *http.Request, out any) error {
	for key, values := range c.header {
		req.Header[key] = values
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// StatusError is returned for non-2xx responses.
// A 429 unwraps to domain.ErrRateLimited and a 404 to domain.ErrNotFound.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return nil
	}
}

// errorMessage extracts the provider's error text. OpenAI nests it as
// {"error":{"message":...}}, Ollama sends {"error":"..."}; anything else is
// quoted as plain text.
func errorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &flat) == nil && flat.Error != "" {
		return flat.Error
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response"
	}
	return domain.PreviewText(text, errorPreviewLength)
}
