package auth

import "time"

// expirySkew is subtracted from the server-declared token lifetime so that a
// token is treated as expired slightly before the server would reject it.
// Servers may consider tokens invalid a little ahead of the declared
// lifetime; retrying with such a token wastes a round trip.
const expirySkew = 30 * time.Second

// Token is an access credential for the Spiris API.
//
// Tokens are immutable values: a refresh produces an entirely new Token and
// never mutates an existing one, so a Token may be read concurrently without
// synchronization. The type is JSON-serializable so callers can persist it;
// storage location and file permissions are the caller's concern.
type Token struct {
	// AccessValue is the opaque bearer credential sent on every request.
	AccessValue string `json:"access_token"`

	// ExpiresAt is the absolute instant after which the token is expired.
	ExpiresAt time.Time `json:"expires_at"`

	// RefreshValue is the opaque credential used to obtain a replacement
	// token. A token without one cannot self-renew; the user must run the
	// authorization flow again.
	RefreshValue string `json:"refresh_token,omitempty"`
}

// NewToken creates a Token from the values of a token-endpoint response.
// expiresIn is the server-declared lifetime in seconds; the stored expiry is
// issuance + expiresIn - expirySkew.
func NewToken(access string, expiresIn int64, refresh string) *Token {
	return &Token{
		AccessValue:  access,
		ExpiresAt:    time.Now().Add(time.Duration(expiresIn)*time.Second - expirySkew),
		RefreshValue: refresh,
	}
}

// Expired reports whether the token is expired at the given instant.
// Callers must check this before dispatching a request, not only on failure.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// CanRefresh reports whether the token carries a refresh credential.
func (t *Token) CanRefresh() bool {
	return t.RefreshValue != ""
}
