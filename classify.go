package spiris

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// outcomeClass is the retry eligibility of one physical attempt. The
// classification here is the single source of truth: the executor acts on it
// and no other component re-derives retryability.
type outcomeClass int

const (
	outcomeSuccess outcomeClass = iota
	// outcomePermanent: the request itself is invalid or forbidden;
	// retrying identically cannot succeed.
	outcomePermanent
	// outcomeTransient: an identical retry might succeed (network blip,
	// server overload).
	outcomeTransient
	// outcomeRateLimited: HTTP 429, possibly with a server-declared
	// Retry-After pacing signal.
	outcomeRateLimited
	// outcomeAuthExpired: the server rejected the token even though the
	// local expiry check passed (clock skew or revocation).
	outcomeAuthExpired
)

// requestOutcome is the classified result of one physical attempt. It is
// produced per attempt and consumed immediately by the executor, never
// persisted.
type requestOutcome struct {
	class outcomeClass
	// retryAfter is the server-declared pacing duration from a 429
	// response, zero when absent.
	retryAfter time.Duration
	err        error
}

// bodySnippetLimit caps how much of an error response body is carried in a
// PermanentError.
const bodySnippetLimit = 512

// classify maps a completed physical attempt, or a transport failure before
// any response was received, onto the outcome taxonomy:
//
//   - transport failure (connection refused, DNS, timeout) -> transient
//   - HTTP 429 -> rate-limited, carrying the parsed Retry-After if present
//   - HTTP 5xx -> transient
//   - HTTP 401 -> auth expired
//   - other HTTP 4xx -> permanent
//   - HTTP 2xx -> success
func classify(operation, endpoint string, res *http.Response, body []byte, err error) requestOutcome {
	if err != nil {
		return requestOutcome{
			class: outcomeTransient,
			err:   fmt.Errorf("sending request (operation %s, endpoint %s): %w", operation, endpoint, err),
		}
	}

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return requestOutcome{class: outcomeSuccess}

	case res.StatusCode == http.StatusTooManyRequests:
		return requestOutcome{
			class:      outcomeRateLimited,
			retryAfter: parseRetryAfter(res.Header.Get("Retry-After")),
			err: fmt.Errorf("rate limited (operation %s, endpoint %s): got status code %d: %s",
				operation, endpoint, res.StatusCode, res.Status),
		}

	case res.StatusCode >= 500:
		return requestOutcome{
			class: outcomeTransient,
			err: fmt.Errorf("server unavailable (operation %s, endpoint %s): got status code %d: %s",
				operation, endpoint, res.StatusCode, res.Status),
		}

	case res.StatusCode == http.StatusUnauthorized:
		return requestOutcome{
			class: outcomeAuthExpired,
			err:   &AuthExpiredError{Operation: operation, Endpoint: endpoint, Remote: true},
		}

	case res.StatusCode >= 400:
		snippet := string(body)
		if len(snippet) > bodySnippetLimit {
			snippet = snippet[:bodySnippetLimit]
		}
		return requestOutcome{
			class: outcomePermanent,
			err:   NewPermanentError(operation, endpoint, res.StatusCode, snippet),
		}

	default:
		// 1xx/3xx should not reach here for this API; treat as permanent
		// so they surface instead of burning attempts.
		return requestOutcome{
			class: outcomePermanent,
			err:   NewPermanentError(operation, endpoint, res.StatusCode, ""),
		}
	}
}

// parseRetryAfter parses a Retry-After header value, which is either a
// number of seconds or an HTTP date. Returns zero when absent or malformed.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}

	return 0
}
