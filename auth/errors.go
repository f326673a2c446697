package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrant is returned when the authorization server rejects the
	// presented grant: an expired or already-used authorization code, a
	// mismatched PKCE verifier, or a revoked refresh credential. The failure
	// is permanent; the user must authenticate again.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrNoRefreshToken is returned when a refresh is requested for a token
	// that carries no refresh credential. No network call is made.
	ErrNoRefreshToken = errors.New("token has no refresh credential")
)

// InvalidGrantError provides structured information about a rejected grant.
// It supports errors.Is with ErrInvalidGrant.
type InvalidGrantError struct {
	// GrantType is the grant that was rejected ("authorization_code" or
	// "refresh_token").
	GrantType string
	// Description is the server's error_description, if any.
	Description string
	// Underlying is the underlying error from the token endpoint.
	Underlying error
}

func (e *InvalidGrantError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("invalid %s grant: %s", e.GrantType, e.Description)
	}
	return fmt.Sprintf("invalid %s grant: %v", e.GrantType, e.Underlying)
}

func (e *InvalidGrantError) Unwrap() error {
	return e.Underlying
}

func (e *InvalidGrantError) Is(target error) bool {
	return target == ErrInvalidGrant
}
