package hnsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the query URL prefix of the Hacker News search API.
const DefaultEndpoint = "https://hn.algolia.com/api/v1/search?query="

const (
	defaultUserAgent = "hackerstories/0.1"
	requestTimeout   = 10 * time.Second
)

// ErrMalformed reports a 2xx response whose body is not a search payload.
var ErrMalformed = errors.New("malformed search response")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search %s returned status %d", e.URL, e.StatusCode)
}

// Searcher runs a search against a fully built query URL.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, queryURL string) ([]Story, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the search API.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. A non-positive timeout uses the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// BuildQueryURL appends the URL-encoded text to the endpoint prefix.
func BuildQueryURL(endpoint, text string) string {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return endpoint + url.QueryEscape(text)
}

// Search issues one GET against queryURL and decodes its hits.
func (c *Client) Search(ctx context.Context, queryURL string) ([]Story, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	u, err := url.Parse(queryURL)
	if err != nil {
		return nil, fmt.Errorf("parse query url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse query url: unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: queryURL}
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w: %v", ErrMalformed, err)
	}
	if payload.Hits == nil {
		return nil, fmt.Errorf("decode response: %w: missing hits", ErrMalformed)
	}

	slog.Debug("hnsearch: search completed", "url", queryURL, "hits", len(*payload.Hits), "elapsed", time.Since(start))
	return normalize(*payload.Hits), nil
}
