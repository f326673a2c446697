package spiris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/spiris/spiris-go/log"
	"github.com/spiris/spiris-go/retry"
)

// do executes one logical request as up to policy.MaxAttempts physical
// attempts. Request bodies are marshaled once and replayed byte-identically
// on every resend. The loop:
//
//  1. before a resend, wait the computed backoff, or the server's
//     Retry-After from a 429 if that is larger
//  2. check token expiry locally and abort with ErrAuthExpired before
//     spending a round trip
//  3. send, classify the outcome, then return (success/permanent/auth),
//     or retry (transient/rate-limited), or give up with ErrExhausted
//     after the final attempt
//
// Token refresh is deliberately not handled here: the caller refreshes and
// reissues the logical call, keeping credential concerns out of the
// transport retry path.
func (c *httpClient) do(ctx context.Context, method string, query url.Values, body, out any, elem ...string) error {
	u := c.base.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	endpoint := strings.Join(elem, "/")

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	policy := c.policy
	if override, ok := retry.FromContext(ctx); ok && override.Validate() == nil {
		policy = override
	}

	logger := log.FromContext(ctx)
	if logger == nil {
		logger = c.logger
	}

	var lastErr error
	var retryAfter time.Duration

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			wait := policy.Backoff(attempt - 1)
			// The server's pacing signal dominates the local backoff.
			if retryAfter > wait {
				wait = retryAfter
			}
			logger.Debug("retrying request",
				"operation", method,
				"endpoint", endpoint,
				"attempt", attempt,
				"max_attempts", policy.MaxAttempts,
				"wait", wait.String())
			if err := retry.Wait(ctx, wait); err != nil {
				return fmt.Errorf("waiting to retry %s %s: %w", method, endpoint, err)
			}
			retryAfter = 0
		}

		// Check expiry before spending a round trip. Aborting here is
		// not retried: a known-invalid credential cannot succeed and
		// only burns rate-limit budget.
		tok := c.token.Load()
		if tok == nil || tok.Expired(time.Now()) {
			return &AuthExpiredError{Operation: method, Endpoint: endpoint}
		}

		req, err := c.newRequest(ctx, method, u, bodyBytes, tok.AccessValue)
		if err != nil {
			return err
		}

		res, sendErr := c.client.Do(req)
		var resBody []byte
		if sendErr == nil {
			resBody, sendErr = readBody(res)
		}

		oc := classify(method, endpoint, res, resBody, sendErr)
		switch oc.class {
		case outcomeSuccess:
			if out == nil || len(resBody) == 0 {
				return nil
			}
			if err := json.Unmarshal(resBody, out); err != nil {
				return fmt.Errorf("decoding %s %s response: %w", method, endpoint, err)
			}
			return nil

		case outcomePermanent, outcomeAuthExpired:
			return oc.err

		case outcomeTransient, outcomeRateLimited:
			lastErr = oc.err
			retryAfter = oc.retryAfter
			if attempt == policy.MaxAttempts {
				return NewExhaustedError(policy.MaxAttempts, lastErr)
			}
			logger.Warn("request failed, will retry",
				"operation", method,
				"endpoint", endpoint,
				"attempt", attempt,
				"error", oc.err.Error())
		}
	}

	// Unreachable: MaxAttempts >= 1 is validated at construction.
	return NewExhaustedError(policy.MaxAttempts, lastErr)
}

// newRequest builds one physical attempt with the standard headers.
func (c *httpClient) newRequest(ctx context.Context, method string, u *url.URL, body []byte, access string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+access)
	req.Header.Set("Accept", "application/json")
	// Setting Accept-Encoding manually disables the transport's
	// transparent decompression, so readBody handles gzip itself.
	req.Header.Set("Accept-Encoding", "gzip")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	userAgent := c.userAgent
	if userAgent == "" {
		userAgent = "spiris-go/0"
	}
	req.Header.Set("User-Agent", userAgent)

	return req, nil
}

// readBody drains and closes the response body, decompressing gzip content.
func readBody(res *http.Response) ([]byte, error) {
	defer func() {
		_ = res.Body.Close()
	}()

	reader := io.Reader(res.Body)
	if strings.EqualFold(res.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip response: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		reader = gz
	}

	return io.ReadAll(reader)
}
