// Package spiris is a client library for the Spiris accounting and invoicing
// REST API. It authenticates with OAuth2 bearer tokens (see the auth
// subpackage), issues typed CRUD and search requests against the customer,
// invoice and article collections, and retries transient failures with
// bounded exponential backoff while respecting server rate-limit signals.
package spiris

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spiris/spiris-go/auth"
	"github.com/spiris/spiris-go/log"
	"github.com/spiris/spiris-go/retry"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://eaccountingapi.vismaonline.com/v2"

// defaultTimeout bounds each physical attempt. The overall logical-request
// deadline, if any, is the caller's context.
const defaultTimeout = 30 * time.Second

// Client defines the interface for interacting with the Spiris API.
//
// A Client is safe for use by many goroutines; each call runs its own
// independent retry loop. Calls fail with ErrAuthExpired when the access
// token is expired or rejected: the client never refreshes tokens itself,
// the caller must refresh (auth.Handler.Refresh), install the new token with
// SetToken and reissue the call.
type Client interface {
	// Token returns the current access token.
	Token() *auth.Token
	// SetToken atomically replaces the current access token. In-flight
	// calls observe either the old or the new token in full.
	SetToken(tok *auth.Token)

	// Customer operations
	ListCustomers(ctx context.Context, opts *ListOptions) (*CustomerList, error)
	SearchCustomers(ctx context.Context, params *QueryParams) (*CustomerList, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error)
	UpdateCustomer(ctx context.Context, id string, customer *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	// Invoice operations
	ListInvoices(ctx context.Context, opts *ListOptions) (*InvoiceList, error)
	SearchInvoices(ctx context.Context, params *QueryParams) (*InvoiceList, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	CreateInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error)
	UpdateInvoice(ctx context.Context, id string, invoice *Invoice) (*Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error

	// Article operations
	ListArticles(ctx context.Context, opts *ListOptions) (*ArticleList, error)
	SearchArticles(ctx context.Context, params *QueryParams) (*ArticleList, error)
	GetArticle(ctx context.Context, id string) (*Article, error)
	CreateArticle(ctx context.Context, article *Article) (*Article, error)
	UpdateArticle(ctx context.Context, id string, article *Article) (*Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// Option is a function that configures a Client during creation.
type Option func(*httpClient) error

// httpClient is the private implementation of the Client interface.
// Configuration is immutable after NewClient; the token is the only mutable
// state and is swapped atomically, never mutated in place.
type httpClient struct {
	base      *url.URL
	client    *http.Client
	userAgent string
	logger    log.Logger
	policy    retry.Policy

	token atomic.Pointer[auth.Token]
}

// NewClient returns a new Client for the Spiris API authenticated with the
// given token. The token may be nil; every request then fails with
// ErrAuthExpired until SetToken installs one.
func NewClient(token *auth.Token, options ...Option) (Client, error) {
	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing default base URL: %w", err)
	}

	c := &httpClient{
		base:   base,
		client: &http.Client{Timeout: defaultTimeout},
		logger: &log.NoopLogger{},
		policy: retry.DefaultPolicy(),
	}
	c.token.Store(token)

	for _, option := range options {
		if option == nil { // allow for easy optional options
			continue
		}
		if err := option(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if err := c.policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return c, nil
}

// Token returns the current access token, or nil if none is installed.
func (c *httpClient) Token() *auth.Token {
	return c.token.Load()
}

// SetToken installs a replacement token with a single atomic swap. No lock
// is held; concurrent readers observe either the previous or the new token
// in full.
func (c *httpClient) SetToken(tok *auth.Token) {
	c.token.Store(tok)
}

// parseBaseURL validates and normalizes an API endpoint URL.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("only HTTP and HTTPS URLs are supported")
	}

	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}
