package spiris

import (
	"errors"
	"net/http"
	"time"

	"github.com/spiris/spiris-go/log"
	"github.com/spiris/spiris-go/retry"
)

// WithBaseURL points the client at a different API endpoint, for example a
// sandbox environment or a test server.
func WithBaseURL(raw string) Option {
	return func(c *httpClient) error {
		u, err := parseBaseURL(raw)
		if err != nil {
			return err
		}
		c.base = u
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client to use for requests.
// This allows customization of transport, proxies, and other HTTP behavior.
// The provided client must not be nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) error {
		if hc == nil {
			return errors.New("httpClient is nil")
		}
		c.client = hc
		return nil
	}
}

// WithTimeout sets the per-attempt transport timeout. It bounds one physical
// attempt, not the whole logical request.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.client.Timeout = d
		return nil
	}
}

// WithRetryPolicy sets the retry policy for all requests issued by the
// client. The policy is validated at construction; an invalid policy fails
// NewClient with ErrInvalidConfig.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *httpClient) error {
		c.policy = policy
		return nil
	}
}

// WithLogger configures a custom logger for the client.
// If not provided, a no-op logger will be used by default.
func WithLogger(logger log.Logger) Option {
	return func(c *httpClient) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *httpClient) error {
		c.userAgent = agent
		return nil
	}
}
