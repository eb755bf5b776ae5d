// Package httpclient is the outbound HTTP client shared by network providers.
// It applies a per-provider rate limit and classifies responses that mean the
// backend is unusable (unreachable, challenged, throttled) as domain.ErrBlocked.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

const (
	// DefaultTimeout bounds one request when the provider spec sets none.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is sent when the provider spec sets none.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 10 << 20
)

// StatusError is a non-2xx response that does not mean "blocked".
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d (URL: %s)", e.StatusCode, e.URL)
}

// Options configures a Client.
type Options struct {
	// Timeout bounds one request (0 = DefaultTimeout).
	Timeout time.Duration
	// Rate is the maximum requests per second (0 = unlimited).
	Rate float64
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// HTTPClient replaces the underlying client. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// Client performs rate-limited GET requests.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a client from options.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{http: hc, limiter: limiter, userAgent: ua}
}

// Get fetches url and returns the response body.
//
// Network failures and 403, 429 and 5xx responses wrap domain.ErrBlocked.
// Other non-2xx responses return a *StatusError.
func (c *Client) Get(ctx context.Context, url string, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBlocked, err)
	}
	defer resp.Body.Close()

	if blocked(resp.StatusCode) {
		return nil, fmt.Errorf("%w: status %d from %s", domain.ErrBlocked, resp.StatusCode, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrBlocked, err)
	}
	return body, nil
}

func blocked(status int) bool {
	return status == http.StatusForbidden ||
		status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError
}
