// Package testutil provides a scripted fake of the Spiris API for tests.
// It records every request it receives and serves canned responses in order,
// so tests can assert both what went over the wire and how the client reacts
// to each outcome.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest captures one request received by the fake API.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is one canned response served by the fake API.
type Response struct {
	// Status defaults to 200 when zero.
	Status int
	// Header entries are copied onto the response.
	Header http.Header
	// Body is written verbatim. JSON bodies should set no Content-Type;
	// the server defaults it to application/json.
	Body string
}

// Server is a fake Spiris API backed by httptest. Responses are served in
// script order; once the script is exhausted the last response repeats, so a
// "fails forever" server is a one-element script.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	script   []Response
	next     int
}

// NewServer starts a fake API serving the given script. The server is shut
// down when the test finishes.
func NewServer(t testing.TB, script ...Response) *Server {
	t.Helper()

	s := &Server{script: script}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})

	resp := Response{Status: http.StatusOK}
	if len(s.script) > 0 {
		resp = s.script[s.next]
		if s.next < len(s.script)-1 {
			s.next++
		}
	}
	s.mu.Unlock()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	if w.Header().Get("Content-Type") == "" && resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, or nil if none arrived.
func (s *Server) LastRequest() *RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	r := s.requests[len(s.requests)-1]
	return &r
}
