// Package github implements the backend collaborator for the retention
// engine: listing workflows, runs and branches, and deleting runs via
// the GitHub REST API. Pagination and rate-limit handling live here so
// the engine only ever sees complete in-memory snapshots.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100
	requestTimeout = 30 * time.Second

	// Primary rate limits are retried once after the advised delay;
	// waiting longer than this aborts instead.
	maxRateLimitWait = 2 * time.Minute
)

// ErrSecondaryRateLimit is returned when GitHub signals a secondary
// (abuse) rate limit. It is never retried here; callers surface it as
// a warning.
var ErrSecondaryRateLimit = errors.New("secondary rate limit hit")

// ErrNotFound is returned for 404 responses
var ErrNotFound = errors.New("not found")

// Client talks to the GitHub REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// sleep is swappable in tests
	sleep func(time.Duration)
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL (GitHub Enterprise, tests)
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client authenticating with the given token
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API request, retrying once on a primary rate limit.
// The returned body is fully read and the response closed.
func (c *Client) do(ctx context.Context, method, url string) ([]byte, error) {
	body, retryIn, err := c.doOnce(ctx, method, url)
	if retryIn == 0 {
		return body, err
	}

	if retryIn > maxRateLimitWait {
		return nil, fmt.Errorf("rate limited, retry advised in %s: giving up", retryIn)
	}
	log.Printf("[github] primary rate limit, retrying %s in %s", url, retryIn)
	c.sleep(retryIn)

	body, retryIn, err = c.doOnce(ctx, method, url)
	if err == nil && retryIn > 0 {
		return nil, fmt.Errorf("still rate limited after one retry")
	}
	return body, err
}

// doOnce performs a single request. A non-zero retryIn indicates a
// retryable primary rate limit.
func (c *Client) doOnce(ctx context.Context, method, url string) (body []byte, retryIn time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, 0, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, 0, ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(string(body)), "secondary rate limit") {
			return nil, 0, ErrSecondaryRateLimit
		}
		if wait, ok := primaryRateLimitWait(resp); ok {
			return nil, wait, nil
		}
	}

	return nil, 0, fmt.Errorf("GitHub API returned status %d: %s",
		resp.StatusCode, truncate(string(body), 200))
}

// primaryRateLimitWait extracts the advised wait from rate-limit headers
func primaryRateLimitWait(resp *http.Response) (time.Duration, bool) {
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			return time.Duration(secs) * time.Second, true
		}
	}

	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		if unix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
			wait := time.Until(time.Unix(unix, 0)) + time.Second
			if wait < time.Second {
				wait = time.Second
			}
			return wait, true
		}
		return 30 * time.Second, true
	}

	return 0, false
}

// getJSON performs a GET and decodes the response into v
func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	body, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing %s response: %w", url, err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
