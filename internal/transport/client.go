// Package transport provides the HTTP client used to reach reference data
// sources.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
)

// DefaultUserAgent identifies fipsref to remote servers.
const DefaultUserAgent = "fipsref"

// Client performs GET requests against one named source and maps failures
// to APIError.
type Client struct {
	http      *http.Client
	source    string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the named source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		source:    source,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Get performs a GET request. Any status other than 200 closes the body and
// returns an APIError. Context cancellation is returned unwrapped so callers
// can match it with errors.Is.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &errors.APIError{
			Source:     c.source,
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}
	return resp, nil
}
