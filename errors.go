package spiris

import (
	"errors"
	"fmt"
)

var (
	// ErrPermanent is returned when the server rejected the request itself
	// (4xx other than 401/429). Retrying the identical request cannot
	// succeed. Use errors.Is for comparison and errors.As for the
	// structured PermanentError.
	ErrPermanent = errors.New("request rejected")

	// ErrExhausted is returned when every allowed attempt failed with a
	// transient or rate-limited outcome. The structured ExhaustedError
	// carries the last observed failure for diagnosis.
	ErrExhausted = errors.New("retry attempts exhausted")

	// ErrAuthExpired is returned when the access token is expired locally
	// or rejected by the server. The client never refreshes on its own;
	// the caller must refresh the token and reissue the call.
	ErrAuthExpired = errors.New("access token expired")

	// ErrInvalidConfig is returned by NewClient when the configuration is
	// unusable, for example a retry policy with a non-positive interval.
	ErrInvalidConfig = errors.New("invalid client configuration")
)

// PermanentError provides structured information about a request the server
// rejected outright. It supports errors.Is with ErrPermanent.
type PermanentError struct {
	// StatusCode is the HTTP status code (4xx, excluding 401 and 429).
	StatusCode int
	// Operation is the HTTP method that failed (e.g. "GET", "POST").
	Operation string
	// Endpoint is the resource path (e.g. "customers").
	Endpoint string
	// Body is a snippet of the response body, for diagnosis.
	Body string
}

func (e *PermanentError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("request rejected (operation %s, endpoint %s, status code %d): %s",
			e.Operation, e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request rejected (operation %s, endpoint %s, status code %d)",
		e.Operation, e.Endpoint, e.StatusCode)
}

// Is enables errors.Is() compatibility with ErrPermanent.
func (e *PermanentError) Is(target error) bool {
	return target == ErrPermanent
}

// NewPermanentError creates a PermanentError for the given attempt details.
func NewPermanentError(operation, endpoint string, statusCode int, body string) *PermanentError {
	return &PermanentError{
		StatusCode: statusCode,
		Operation:  operation,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// ExhaustedError provides structured information about a logical request that
// ran out of attempts. It supports errors.Is with ErrExhausted and unwraps to
// the last observed failure.
type ExhaustedError struct {
	// Attempts is the number of physical attempts performed.
	Attempts int
	// LastErr is the classified failure of the final attempt.
	LastErr error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Is enables errors.Is() compatibility with ErrExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// NewExhaustedError creates an ExhaustedError wrapping the last failure.
func NewExhaustedError(attempts int, lastErr error) *ExhaustedError {
	return &ExhaustedError{
		Attempts: attempts,
		LastErr:  lastErr,
	}
}

// AuthExpiredError provides structured information about a credential the
// server (or the local expiry check) no longer accepts. It supports
// errors.Is with ErrAuthExpired.
type AuthExpiredError struct {
	// Operation is the HTTP method of the aborted request.
	Operation string
	// Endpoint is the resource path of the aborted request.
	Endpoint string
	// Remote is true when the server rejected the token (HTTP 401) even
	// though the local expiry check passed, e.g. clock skew or
	// server-side revocation. False when the local check caught it and
	// no request was sent.
	Remote bool
}

func (e *AuthExpiredError) Error() string {
	if e.Remote {
		return fmt.Sprintf("access token rejected by server (operation %s, endpoint %s)", e.Operation, e.Endpoint)
	}
	return fmt.Sprintf("access token expired (operation %s, endpoint %s)", e.Operation, e.Endpoint)
}

// Is enables errors.Is() compatibility with ErrAuthExpired.
func (e *AuthExpiredError) Is(target error) bool {
	return target == ErrAuthExpired
}
