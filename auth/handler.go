// Package auth implements the OAuth2 authorization-code flow for the Spiris
// API: building authorization URLs with CSRF state and a PKCE challenge,
// exchanging authorization codes for tokens, and refreshing expired tokens.
//
// The package only manages credentials. Request execution, retries, and
// expiry checks before dispatch belong to the spiris client; the client never
// refreshes tokens itself and surfaces ErrAuthExpired to its caller instead.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultAuthURL is the production authorization endpoint.
	DefaultAuthURL = "https://identity.vismaonline.com/connect/authorize"

	// DefaultTokenURL is the production token endpoint.
	DefaultTokenURL = "https://identity.vismaonline.com/connect/token"

	// defaultLifetime is assumed when the token endpoint omits expires_in.
	defaultLifetime = 3600 * time.Second
)

// DefaultScopes are requested when the config names none. offline_access is
// required for the server to issue a refresh credential.
var DefaultScopes = []string{"ea:api", "ea:sales", "offline_access"}

// Config holds the registered OAuth2 application settings.
type Config struct {
	ClientID     string
	ClientSecret string
	// RedirectURI must exactly match one registered for the application.
	RedirectURI string
	// Scopes defaults to DefaultScopes when empty.
	Scopes []string
	// AuthURL and TokenURL default to the production endpoints.
	AuthURL  string
	TokenURL string
	// HTTPClient is used for token-endpoint calls. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Handler drives the OAuth2 flow described by a Config.
type Handler struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewHandler creates a Handler for the given config.
func NewHandler(cfg Config) (*Handler, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID cannot be empty")
	}
	if cfg.RedirectURI == "" {
		return nil, errors.New("redirect URI cannot be empty")
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	return &Handler{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		httpClient: cfg.HTTPClient,
	}, nil
}

// AuthorizeURL returns the browser-directed authorization URL together with
// the CSRF state and the PKCE verifier for this flow. Both are generated
// fresh per call; the verifier must be kept in memory until the matching
// ExchangeCode call and never logged or persisted.
func (h *Handler) AuthorizeURL() (authURL, state, verifier string) {
	state = randomState()
	verifier = oauth2.GenerateVerifier()
	authURL = h.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	return authURL, state, verifier
}

// ExchangeCode exchanges an authorization code and its PKCE verifier for a
// Token. A rejected code (expired, already used, or verifier mismatch) fails
// with ErrInvalidGrant; that failure is permanent and must not be retried.
func (h *Handler) ExchangeCode(ctx context.Context, code, verifier string) (*Token, error) {
	got, err := h.conf.Exchange(h.withHTTPClient(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, classifyTokenError("authorization_code", err)
	}

	return fromOAuth2(got), nil
}

// Refresh obtains a replacement Token using the refresh credential of the
// given one. The old token is not mutated. Fails with ErrNoRefreshToken
// without any network call when the token cannot self-renew, and with
// ErrInvalidGrant when the server rejects the refresh credential; the latter
// means the user must authenticate again.
func (h *Handler) Refresh(ctx context.Context, tok *Token) (*Token, error) {
	if tok == nil || !tok.CanRefresh() {
		return nil, ErrNoRefreshToken
	}

	src := h.conf.TokenSource(h.withHTTPClient(ctx), &oauth2.Token{RefreshToken: tok.RefreshValue})
	got, err := src.Token()
	if err != nil {
		return nil, classifyTokenError("refresh_token", err)
	}

	fresh := fromOAuth2(got)
	if fresh.RefreshValue == "" {
		// Some servers omit the refresh credential on rotation;
		// keep the previous one so the token can renew again.
		fresh.RefreshValue = tok.RefreshValue
	}
	return fresh, nil
}

// withHTTPClient injects the configured HTTP client for token-endpoint calls.
func (h *Handler) withHTTPClient(ctx context.Context) context.Context {
	if h.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)
}

// fromOAuth2 converts a token-endpoint response into an immutable Token,
// applying the expiry skew margin.
func fromOAuth2(got *oauth2.Token) *Token {
	expiresAt := got.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(defaultLifetime)
	}

	return &Token{
		AccessValue:  got.AccessToken,
		ExpiresAt:    expiresAt.Add(-expirySkew),
		RefreshValue: got.RefreshToken,
	}
}

// classifyTokenError maps token-endpoint failures onto the auth error
// taxonomy. invalid_grant responses become InvalidGrantError; anything else
// (network failures, server errors) is passed through for the caller to
// handle as a transport problem.
func classifyTokenError(grantType string, err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.ErrorCode == "invalid_grant" {
		return &InvalidGrantError{
			GrantType:   grantType,
			Description: rErr.ErrorDescription,
			Underlying:  err,
		}
	}
	return fmt.Errorf("%s exchange: %w", grantType, err)
}

// randomState returns a cryptographically random CSRF state value.
func randomState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("reading random state: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
