// Package session wires the CLI to the spiris client. It loads the saved
// token, builds the client and the OAuth2 handler from the environment, and
// handles the one place where credential and transport concerns meet: when a
// call fails with ErrAuthExpired the session refreshes the token, persists
// it, and reissues the logical call exactly once.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"

	spiris "github.com/spiris/spiris-go"
	"github.com/spiris/spiris-go/auth"
	"github.com/spiris/spiris-go/cli/internal/tokenstore"
	"github.com/spiris/spiris-go/log"
)

const (
	envClientID     = "SPIRIS_CLIENT_ID"
	envClientSecret = "SPIRIS_CLIENT_SECRET"
	envRedirectURI  = "SPIRIS_REDIRECT_URI"

	defaultRedirectURI = "http://localhost:8080/callback"
)

// Options configure a Session.
type Options struct {
	// TokenPath is the token file location. Empty uses the default.
	TokenPath string
	// BaseURL overrides the production API endpoint.
	BaseURL string
	// Logger receives client logging. Nil disables it.
	Logger log.Logger
}

// Session holds a configured client and the pieces needed to keep its
// credential fresh across CLI invocations.
type Session struct {
	Client    spiris.Client
	Handler   *auth.Handler
	TokenPath string
}

// New builds a Session from the saved token and environment credentials.
// A missing token file is not an error; unauthenticated sessions can still
// run `auth login`.
func New(opts Options) (*Session, error) {
	tokenPath := opts.TokenPath
	if tokenPath == "" {
		var err error
		tokenPath, err = tokenstore.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	tok, err := tokenstore.Load(tokenPath)
	if err != nil && !errors.Is(err, tokenstore.ErrNoToken) {
		return nil, err
	}

	var clientOpts []spiris.Option
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spiris.WithBaseURL(opts.BaseURL))
	}
	if opts.Logger != nil {
		clientOpts = append(clientOpts, spiris.WithLogger(opts.Logger))
	}

	client, err := spiris.NewClient(tok, clientOpts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Client:    client,
		TokenPath: tokenPath,
	}

	// The handler is optional: resource commands work without it until
	// the token expires.
	if handler, err := HandlerFromEnv(); err == nil {
		s.Handler = handler
	}

	return s, nil
}

// HandlerFromEnv builds an OAuth2 handler from SPIRIS_CLIENT_ID,
// SPIRIS_CLIENT_SECRET and SPIRIS_REDIRECT_URI.
func HandlerFromEnv() (*auth.Handler, error) {
	clientID := os.Getenv(envClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%s is not set", envClientID)
	}

	redirectURI := os.Getenv(envRedirectURI)
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	return auth.NewHandler(auth.Config{
		ClientID:     clientID,
		ClientSecret: os.Getenv(envClientSecret),
		RedirectURI:  redirectURI,
	})
}

// Run executes one logical call. When it fails with ErrAuthExpired the
// session refreshes the token, installs and persists it, and reissues the
// call once. Any further auth failure surfaces to the user.
func (s *Session) Run(ctx context.Context, fn func(spiris.Client) error) error {
	err := fn(s.Client)
	if !errors.Is(err, spiris.ErrAuthExpired) {
		return err
	}

	if err := s.RefreshToken(ctx); err != nil {
		return err
	}

	return fn(s.Client)
}

// RefreshToken refreshes the current token through the OAuth2 handler and
// persists the replacement.
func (s *Session) RefreshToken(ctx context.Context) error {
	if s.Handler == nil {
		return fmt.Errorf("session expired and %s is not set; run 'spiris auth login'", envClientID)
	}

	fresh, err := s.Handler.Refresh(ctx, s.Client.Token())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidGrant) || errors.Is(err, auth.ErrNoRefreshToken) {
			return fmt.Errorf("session expired; run 'spiris auth login': %w", err)
		}
		return fmt.Errorf("refreshing token: %w", err)
	}

	s.Client.SetToken(fresh)
	if err := tokenstore.Save(s.TokenPath, fresh); err != nil {
		return fmt.Errorf("persisting refreshed token: %w", err)
	}
	return nil
}
