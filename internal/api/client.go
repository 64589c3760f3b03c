// Package api is the HTTP client for the risk backend.
//
// The transport (Fetch) performs exactly one round trip per call: no retries,
// no timeouts and no caching. Retry policy belongs to callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// Client talks to the risk backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for baseURL. Trailing slashes are dropped; an
// empty baseURL leaves request paths relative.
func NewClient(baseURL string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    normalizeBaseURL(baseURL),
		httpClient: &http.Client{},
		log:        log.With().Str("component", "api_client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBaseURL points the client at another backend.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = normalizeBaseURL(baseURL)
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// BuildURL resolves path against the base URL (absolute http(s) paths are
// kept as-is) and appends the query.
func (c *Client) BuildURL(path string, query Query) string {
	u := path
	if !absoluteURL.MatchString(path) {
		u = c.baseURL + path
	}
	return AppendQuery(u, query)
}

// Request carries the optional parts of a call. A nil *Request means GET
// without a body.
type Request struct {
	Method string
	Body   any // JSON-encoded when non-nil
	Header http.Header
}

// Fetch performs a single request and decodes the JSON response into T.
// A 204 response yields the zero value of T. Non-2xx responses return *Error.
func Fetch[T any](ctx context.Context, c *Client, path string, req *Request) (T, error) {
	var out T

	if req == nil {
		req = &Request{}
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	u := c.BuildURL(path, nil)

	var body io.Reader
	if req.Body != nil {
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return out, fmt.Errorf("failed to marshal %s %s body: %w", method, u, err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return out, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("url", u).Msg("request failed")
		return out, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			URL:        u,
		}
		// The body is best-effort; a read failure must not hide the status.
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			apiErr.BodyText = string(data)
		}
		return out, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return out, nil
	}

	// Only 204 may come without a body.
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode %s %s response: %w", method, u, err)
	}
	return out, nil
}

// statusText prefers the reason phrase sent by the server.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
