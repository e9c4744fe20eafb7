package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

// roundTripperFunc lets tests fake the transport of an http.Client.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type capturedRequest struct {
	Method     string
	RequestURI string
	Header     http.Header
	Body       []byte
}

// backend is an httptest server that records every request and replies with
// a fixed status and body.
type backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newBackend(t *testing.T, status int, body string) *backend {
	t.Helper()
	b := &backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, capturedRequest{
			Method:     r.Method,
			RequestURI: r.RequestURI,
			Header:     r.Header.Clone(),
			Body:       payload,
		})
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) last(t *testing.T) capturedRequest {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		t.Fatal("backend received no request")
	}
	return b.requests[len(b.requests)-1]
}

func (b *backend) client(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{WithLogger(zaptest.NewLogger(t).Sugar())}
	return New(b.URL+"/api", append(base, opts...)...)
}

// unreachableClient points at a server that has already been shut down.
func unreachableClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return New(url+"/api", WithLogger(zaptest.NewLogger(t).Sugar()))
}
