package hellomoon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the root every endpoint path is appended to.
const DefaultBaseURL = "https://rest-api.hellomoon.io/v0"

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 256 // bytes of a non-2xx body quoted in the error
)

// Client performs single request/response cycles against the Hello Moon API.
// It holds no credentials: the API key is supplied on every call. A Client is
// safe for concurrent use and shares one pooled *http.Client across calls.
type Client struct {
	http    *http.Client
	baseURL string
	logger  zerolog.Logger
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
// The client is never modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL overrides DefaultBaseURL (tests point this at httptest servers).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-call timeout, whatever the option order.
// Non-positive durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the sink for request diagnostics. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client with a 30s timeout against DefaultBaseURL.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: DefaultBaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the API root the client resolves paths against.
func (c *Client) BaseURL() string { return c.baseURL }

// URL resolves an endpoint path ("/nft/listings") against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Call POSTs req as JSON to url with bearer authentication and decodes the
// response body into Resp.
//
// A nil req (including a typed nil pointer) sends no body. Instantiate Resp
// with json.RawMessage or any to inspect the untyped response.
//
// Transport failures, non-2xx statuses and bodies that do not decode into Resp
// are all returned as an error; there is no retry.
func Call[Resp any](ctx context.Context, c *Client, url, apiKey string, req any) (Resp, error) {
	var out Resp

	body := io.Reader(http.NoBody)
	if !isNil(req) {
		payload, err := json.Marshal(req)
		if err != nil {
			return out, fmt.Errorf("encode request: %w", err)
		}
		c.logger.Debug().Str("url", url).RawJSON("body", payload).Msg("hellomoon request")
		body = bytes.NewReader(payload)
	} else {
		c.logger.Debug().Str("url", url).Msg("hellomoon request (no body)")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return out, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Int("bytes", len(raw)).Msg("hellomoon response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("HTTP %d: %s", resp.StatusCode, excerpt(raw))
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode failed: %w", err)
	}
	return out, nil
}

// isNil reports whether v is nil or an interface wrapping a nil pointer/map/slice.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "empty body"
	}
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "…"
	}
	return s
}
