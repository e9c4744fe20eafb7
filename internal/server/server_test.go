package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/metrics"
	"github.com/sarif-mia/agency-website-sub000/internal/middleware"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, backend http.HandlerFunc, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()
	be := httptest.NewServer(backend)
	t.Cleanup(be.Close)

	reg := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(reg)
	logger := zaptest.NewLogger(t).Sugar()
	c := client.New(be.URL+"/api", client.WithMetrics(m), client.WithLogger(logger))

	if limiter == nil {
		limiter = middleware.NewRateLimiter(middleware.Limit{PerMinute: 600, Burst: 100}, middleware.Limit{PerMinute: 600, Burst: 100}, time.Minute)
	}
	s := New(Deps{
		Client:   c,
		Content:  service.NewContentService(c, nil, m),
		Leads:    service.NewLeadService(c),
		Limiter:  limiter,
		Gatherer: reg,
		Logger:   logger,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string) (int, model.Response) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body model.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestServer_Routes(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.RequestURI())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/health/"):
			_, _ = io.WriteString(w, `{"status":"healthy","timestamp":"2026-10-18T09:00:00Z","version":"1.0.0"}`)
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"success":true,"message":"Successfully subscribed to newsletter!"}`)
		default:
			_, _ = io.WriteString(w, `[{"id":1,"slug":"one"}]`)
		}
	}, nil)

	status, body := getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body.Data.(map[string]any)["backend"])

	status, body = getJSON(t, ts.URL+"/content/projects?category=web&page=2")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "live", body.Data.(map[string]any)["source"])

	status, _ = getJSON(t, ts.URL+"/content/help/category/account")
	assert.Equal(t, http.StatusOK, status)
	status, _ = getJSON(t, ts.URL+"/content/case-studies/industry/healthcare")
	assert.Equal(t, http.StatusOK, status)
	status, _ = getJSON(t, ts.URL+"/content/services/web-development")
	assert.Equal(t, http.StatusOK, status)

	resp, err := http.Post(ts.URL+"/leads/newsletter", "application/json", strings.NewReader(`{"email":"ada@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/api/health/",
		"/api/projects/?category=web&page=2",
		"/api/help/category/account/",
		"/api/case-studies/industry/healthcare/",
		"/api/services/web-development/",
		"/api/newsletter/subscribe/",
	}, seen)
}

func TestServer_DemoModeWhenBackendDown(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// hijack and drop the connection so the client sees a transport error
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}, nil)

	status, body := getJSON(t, ts.URL+"/content/testimonials")
	assert.Equal(t, http.StatusOK, status)
	data := body.Data.(map[string]any)
	assert.Equal(t, "sample", data["source"])
	assert.Equal(t, model.DemoModeMessage, data["message"])
	assert.NotEmpty(t, data["items"])

	resp, err := http.Post(ts.URL+"/leads/contact", "application/json",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestServer_RateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.Limit{PerMinute: 60, Burst: 100}, middleware.Limit{PerMinute: 1, Burst: 1}, time.Minute)
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}, limiter)

	status, _ := getJSON(t, ts.URL+"/content/blog")
	assert.Equal(t, http.StatusOK, status)
	status, body := getJSON(t, ts.URL+"/content/projects")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too Many Requests (per-route limit)", body.Message)

	// health is outside the limited group
	status, _ = getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestServer_ForwardedForDoesNotResetLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.Limit{PerMinute: 1, Burst: 1}, middleware.Limit{PerMinute: 1, Burst: 1}, time.Minute)
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}, limiter)

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/content/projects", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, statuses)
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1}]`)
	}, nil)

	status, _ := getJSON(t, ts.URL+"/content/services")
	require.Equal(t, http.StatusOK, status)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `agency_api_requests_total{outcome="ok",resource="services"} 1`)
	assert.Contains(t, string(raw), `agency_content_fallbacks_total{resource="services",source="live"} 1`)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s := New(Deps{
		Client:  client.New("http://backend.invalid/api", client.WithLogger(zaptest.NewLogger(t).Sugar())),
		Content: service.NewContentService(nil, nil, nil),
		Leads:   service.NewLeadService(nil),
		Logger:  zaptest.NewLogger(t).Sugar(),
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/content/pricing")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
