package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, tokenHandler http.HandlerFunc) (*Handler, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		tokenHandler(w, r)
	}))
	t.Cleanup(srv.Close)

	h, err := NewHandler(Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURI:  "http://localhost:8080/callback",
		AuthURL:      srv.URL + "/authorize",
		TokenURL:     srv.URL + "/token",
		HTTPClient:   srv.Client(),
	})
	require.NoError(t, err)
	return h, &calls
}

func TestNewHandler_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewHandler(Config{RedirectURI: "http://localhost/cb"})
	require.ErrorContains(t, err, "client ID cannot be empty")

	_, err = NewHandler(Config{ClientID: "id"})
	require.ErrorContains(t, err, "redirect URI cannot be empty")
}

func TestAuthorizeURL(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	authURL, state, verifier := h.AuthorizeURL()
	require.NotEmpty(t, state)
	require.NotEmpty(t, verifier)

	u, err := url.Parse(authURL)
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "test-client", q.Get("client_id"))
	require.Equal(t, "http://localhost:8080/callback", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, state, q.Get("state"))
	require.NotEmpty(t, q.Get("code_challenge"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))
	require.Contains(t, q.Get("scope"), "offline_access")
}

func TestAuthorizeURL_FreshPerFlow(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	_, state1, verifier1 := h.AuthorizeURL()
	_, state2, verifier2 := h.AuthorizeURL()
	require.NotEqual(t, state1, state2)
	require.NotEqual(t, verifier1, verifier2)
}

func TestExchangeCode(t *testing.T) {
	t.Parallel()

	h, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "the-verifier", r.PostForm.Get("code_verifier"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"issued","token_type":"Bearer","expires_in":3600,"refresh_token":"refresher"}`))
	})

	tok, err := h.ExchangeCode(context.Background(), "the-code", "the-verifier")
	require.NoError(t, err)
	require.Equal(t, "issued", tok.AccessValue)
	require.Equal(t, "refresher", tok.RefreshValue)
	require.False(t, tok.Expired(time.Now()))
	require.Equal(t, int64(1), calls.Load())
}

func TestExchangeCode_InvalidGrant(t *testing.T) {
	t.Parallel()

	h, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"code challenge mismatch"}`))
	})

	_, err := h.ExchangeCode(context.Background(), "bad-code", "wrong-verifier")
	require.ErrorIs(t, err, ErrInvalidGrant)

	var igErr *InvalidGrantError
	require.ErrorAs(t, err, &igErr)
	require.Equal(t, "authorization_code", igErr.GrantType)
	require.Contains(t, igErr.Description, "mismatch")

	// Permanent failure: exactly one token-endpoint call, no retries.
	require.Equal(t, int64(1), calls.Load())
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"renewed","token_type":"Bearer","expires_in":3600,"refresh_token":"rotated"}`))
	})

	old := NewToken("stale", 0, "old-refresh")
	fresh, err := h.Refresh(context.Background(), old)
	require.NoError(t, err)
	require.Equal(t, "renewed", fresh.AccessValue)
	require.Equal(t, "rotated", fresh.RefreshValue)

	// The old token is an immutable value; refresh replaced, not mutated.
	require.Equal(t, "stale", old.AccessValue)
	require.Equal(t, "old-refresh", old.RefreshValue)
}

func TestRefresh_KeepsRefreshValueWhenNotRotated(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"renewed","token_type":"Bearer","expires_in":3600}`))
	})

	fresh, err := h.Refresh(context.Background(), NewToken("stale", 0, "keeper"))
	require.NoError(t, err)
	require.Equal(t, "keeper", fresh.RefreshValue)
}

func TestRefresh_NoRefreshToken(t *testing.T) {
	t.Parallel()

	h, calls := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called")
	})

	_, err := h.Refresh(context.Background(), NewToken("access", 3600, ""))
	require.ErrorIs(t, err, ErrNoRefreshToken)
	require.Equal(t, int64(0), calls.Load())

	_, err = h.Refresh(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoRefreshToken)
	require.Equal(t, int64(0), calls.Load())
}

func TestRefresh_RevokedCredential(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"refresh token revoked"}`))
	})

	_, err := h.Refresh(context.Background(), NewToken("stale", 0, "revoked"))
	require.ErrorIs(t, err, ErrInvalidGrant)
}
