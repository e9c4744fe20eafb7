package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/repository"
	"go.uber.org/zap/zaptest"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// mockSnapshotRepository is an in-memory SnapshotRepository.
type mockSnapshotRepository struct {
	mu    sync.Mutex
	items map[string]*model.Envelope
	err   error
}

func newMockSnapshots() *mockSnapshotRepository {
	return &mockSnapshotRepository{items: map[string]*model.Envelope{}}
}

func (m *mockSnapshotRepository) Save(_ context.Context, key string, env *model.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = env
}

func (m *mockSnapshotRepository) Load(_ context.Context, key string) (*model.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	env, ok := m.items[key]
	if !ok {
		return nil, repository.ErrSnapshotNotFound
	}
	return env, nil
}

type recordedRequest struct {
	Method     string
	RequestURI string
	Body       string
}

// backend serves a fixed status and body and records every request.
type backend struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	server   *httptest.Server
}

func newBackend(t *testing.T, status int, body string) *backend {
	t.Helper()
	b := &backend{status: status, body: body}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{Method: r.Method, RequestURI: r.RequestURI, Body: string(raw)})
		status, body := b.status, b.body
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) client(t *testing.T) *client.Client {
	return client.New(b.server.URL+"/api", client.WithLogger(zaptest.NewLogger(t).Sugar()))
}

func (b *backend) calls() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedRequest(nil), b.requests...)
}

func unreachableClient(t *testing.T) *client.Client {
	hc := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})}
	return client.New("http://backend.invalid/api",
		client.WithHTTPClient(hc),
		client.WithLogger(zaptest.NewLogger(t).Sugar()))
}
