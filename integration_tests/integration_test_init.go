package integrationtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
)

// mockBackend imitates the agency REST API. When down, every connection is
// dropped so the client sees a transport failure.
type mockBackend struct {
	server *httptest.Server
	down   atomic.Bool

	mu       sync.Mutex
	requests []string
}

func newMockBackend() *mockBackend {
	b := &mockBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *mockBackend) serve(w http.ResponseWriter, r *http.Request) {
	if b.down.Load() {
		if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
			conn.Close()
		}
		return
	}

	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.RequestURI())
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.Method + " " + r.URL.Path {
	case "GET /api/health/":
		_, _ = io.WriteString(w, `{"status":"healthy","timestamp":"2026-10-18T09:00:00Z","version":"1.0.0"}`)
	case "GET /api/projects/":
		_, _ = io.WriteString(w, `{"count":2,"next":null,"previous":null,"results":[`+
			`{"id":10,"title":"Live Storefront","slug":"live-storefront","category":"web","technologies":["Go"],"is_featured":true},`+
			`{"id":11,"title":"Live App","slug":"live-app","category":"mobile","technologies":["Kotlin"],"is_featured":false}]}`)
	case "GET /api/projects/categories/":
		_, _ = io.WriteString(w, `{"categories":[{"value":"web","label":"Web Development","count":1}],"total":1}`)
	case "POST /api/contact/":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"message":"Thank you for your message! We'll get back to you soon.","data":{"id":1}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	}
}

func (b *mockBackend) received() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *mockBackend) reset() {
	b.mu.Lock()
	b.requests = nil
	b.mu.Unlock()
}
