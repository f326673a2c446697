package spiris

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func response(status int, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		expected outcomeClass
	}{
		{name: "200 OK", status: http.StatusOK, expected: outcomeSuccess},
		{name: "201 Created", status: http.StatusCreated, expected: outcomeSuccess},
		{name: "204 No Content", status: http.StatusNoContent, expected: outcomeSuccess},
		{name: "400 Bad Request", status: http.StatusBadRequest, expected: outcomePermanent},
		{name: "401 Unauthorized", status: http.StatusUnauthorized, expected: outcomeAuthExpired},
		{name: "403 Forbidden", status: http.StatusForbidden, expected: outcomePermanent},
		{name: "404 Not Found", status: http.StatusNotFound, expected: outcomePermanent},
		{name: "429 Too Many Requests", status: http.StatusTooManyRequests, expected: outcomeRateLimited},
		{name: "500 Internal Server Error", status: http.StatusInternalServerError, expected: outcomeTransient},
		{name: "502 Bad Gateway", status: http.StatusBadGateway, expected: outcomeTransient},
		{name: "503 Service Unavailable", status: http.StatusServiceUnavailable, expected: outcomeTransient},
		{name: "599 unassigned 5xx", status: 599, expected: outcomeTransient},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			oc := classify("GET", "customers", response(tt.status, nil), nil, nil)
			require.Equal(t, tt.expected, oc.class)
			if tt.expected != outcomeSuccess {
				require.Error(t, oc.err)
			}
		})
	}
}

func TestClassify_TransportFailure(t *testing.T) {
	t.Parallel()

	oc := classify("GET", "customers", nil, nil, errors.New("dial tcp: connection refused"))
	require.Equal(t, outcomeTransient, oc.class)
	require.ErrorContains(t, oc.err, "connection refused")
}

func TestClassify_PermanentCarriesDetail(t *testing.T) {
	t.Parallel()

	body := []byte(`{"DeveloperErrorMessage":"CustomerNumber is required"}`)
	oc := classify("POST", "customers", response(http.StatusUnprocessableEntity, nil), body, nil)
	require.Equal(t, outcomePermanent, oc.class)

	var pErr *PermanentError
	require.ErrorAs(t, oc.err, &pErr)
	require.Equal(t, http.StatusUnprocessableEntity, pErr.StatusCode)
	require.Equal(t, "POST", pErr.Operation)
	require.Equal(t, "customers", pErr.Endpoint)
	require.Contains(t, pErr.Body, "CustomerNumber is required")
}

func TestClassify_PermanentBodySnippetCapped(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4096)
	for i := range body {
		body[i] = 'x'
	}

	oc := classify("POST", "invoices", response(http.StatusBadRequest, nil), body, nil)
	var pErr *PermanentError
	require.ErrorAs(t, oc.err, &pErr)
	require.Len(t, pErr.Body, bodySnippetLimit)
}

func TestClassify_AuthExpiredRemote(t *testing.T) {
	t.Parallel()

	oc := classify("GET", "invoices", response(http.StatusUnauthorized, nil), nil, nil)
	require.ErrorIs(t, oc.err, ErrAuthExpired)

	var aErr *AuthExpiredError
	require.ErrorAs(t, oc.err, &aErr)
	require.True(t, aErr.Remote)
}

func TestClassify_RateLimitedRetryAfter(t *testing.T) {
	t.Parallel()

	header := make(http.Header)
	header.Set("Retry-After", "10")

	oc := classify("GET", "customers", response(http.StatusTooManyRequests, header), nil, nil)
	require.Equal(t, outcomeRateLimited, oc.class)
	require.Equal(t, 10*time.Second, oc.retryAfter)
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Duration(0), parseRetryAfter(""))
	require.Equal(t, 10*time.Second, parseRetryAfter("10"))
	require.Equal(t, time.Duration(0), parseRetryAfter("-3"))
	require.Equal(t, time.Duration(0), parseRetryAfter("soon"))

	// HTTP-date form: a date in the future yields a positive wait.
	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	d := parseRetryAfter(future)
	require.Greater(t, d, 80*time.Second)
	require.LessOrEqual(t, d, 90*time.Second)

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	require.Equal(t, time.Duration(0), parseRetryAfter(past))
}
