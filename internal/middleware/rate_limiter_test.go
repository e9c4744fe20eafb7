package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/goleak"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

// Note: with a per-minute rate, no token refills during a unit test, so
// exactly Burst requests pass.

func TestRateLimitMiddleware_GlobalBurst(t *testing.T) {
	rl := NewRateLimiter(Limit{PerMinute: 10, Burst: 10}, Limit{PerMinute: 2, Burst: 2}, time.Minute)
	mw := rl.Middleware(okHandler())
	ip := "1.2.3.4:1234"

	// distinct paths spread over route buckets, so only the global burst applies
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", fmt.Sprintf("/content/page%d", i), nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)
		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d on request %d", w.Result().StatusCode, i+1)
		}
	}

	req := httptest.NewRequest("GET", "/content/page11", nil)
	req.RemoteAddr = ip
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d on 11th request", w.Result().StatusCode)
	}
	var resp map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if !strings.Contains(resp["error"].(string), "Rate limit exceeded") {
		t.Errorf("expected global limit error, got %v", resp["error"])
	}
	if resp["message"] != "Too Many Requests (global limit)" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestRateLimitMiddleware_PerRouteBurst(t *testing.T) {
	rl := NewRateLimiter(Limit{PerMinute: 10, Burst: 10}, Limit{PerMinute: 2, Burst: 2}, time.Minute)
	mw := rl.Middleware(okHandler())
	ip := "2.3.4.5:2345"

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/leads/contact", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)
		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d on request %d", w.Result().StatusCode, i+1)
		}
	}

	req := httptest.NewRequest("POST", "/leads/contact", nil)
	req.RemoteAddr = ip
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d on 3rd request", w.Result().StatusCode)
	}
	var resp map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp["message"] != "Too Many Requests (per-route limit)" {
		t.Errorf("expected per-route limit message, got %v", resp["message"])
	}

	// another IP has its own buckets
	req = httptest.NewRequest("POST", "/leads/contact", nil)
	req.RemoteAddr = "9.9.9.9:1"
	w = httptest.NewRecorder()
	mw.ServeHTTP(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for a new IP, got %d", w.Result().StatusCode)
	}
}

func TestRateLimitMiddleware_SharesBucketPerChiPattern(t *testing.T) {
	rl := NewRateLimiter(Limit{PerMinute: 100, Burst: 100}, Limit{PerMinute: 2, Burst: 2}, time.Minute)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(rl.Middleware)
		r.Get("/content/{resource}", okHandler().ServeHTTP)
	})

	codes := []int{}
	for _, path := range []string{"/content/blog", "/content/projects", "/content/services"} {
		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = "3.3.3.3:1"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request %d: expected %d, got %d", i+1, want[i], codes[i])
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trust      bool
		xff        string
		xRealIP    string
		remoteAddr string
		want       string
	}{
		{name: "forwarded header ignored by default", xff: "10.0.0.1, 10.0.0.2", remoteAddr: "1.1.1.1:80", want: "1.1.1.1"},
		{name: "forwarded header trusted", trust: true, xff: "10.0.0.1, 10.0.0.2", remoteAddr: "1.1.1.1:80", want: "10.0.0.1"},
		{name: "real ip trusted", trust: true, xRealIP: "10.0.0.9", remoteAddr: "1.1.1.1:80", want: "10.0.0.9"},
		{name: "trusted without headers", trust: true, remoteAddr: "1.1.1.1:80", want: "1.1.1.1"},
		{name: "remote addr", remoteAddr: "1.1.1.1:80", want: "1.1.1.1"},
		{name: "no port", remoteAddr: "1.1.1.1", want: "1.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(Limit{PerMinute: 10, Burst: 10}, Limit{PerMinute: 2, Burst: 2}, time.Minute).
				TrustProxyHeaders(tt.trust)
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if got := rl.clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware_RotatingForwardedForStillLimited(t *testing.T) {
	rl := NewRateLimiter(Limit{PerMinute: 1, Burst: 1}, Limit{PerMinute: 1, Burst: 1}, time.Minute)
	mw := rl.Middleware(okHandler())

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/content/projects", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		} else if w.Code != http.StatusTooManyRequests {
			t.Fatalf("unexpected status %d", w.Code)
		}
	}
	if allowed != 1 {
		t.Fatalf("expected 1 request allowed from the same peer, got %d/50", allowed)
	}
}

func TestSweep_RemovesStaleVisitors(t *testing.T) {
	rl := NewRateLimiter(Limit{PerMinute: 10, Burst: 10}, Limit{PerMinute: 2, Burst: 2}, 3*time.Minute)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getGlobalLimiter("1.1.1.1")
	rl.getRouteLimiter("1.1.1.1", "GET /content/{resource}")

	now = now.Add(2 * time.Minute)
	rl.getGlobalLimiter("2.2.2.2")
	rl.Sweep()
	if got := rl.Visitors(); got != 2 {
		t.Fatalf("expected 2 visitors before ttl, got %d", got)
	}

	now = now.Add(2 * time.Minute)
	rl.Sweep()
	if got := rl.Visitors(); got != 1 {
		t.Fatalf("expected 1 visitor after ttl, got %d", got)
	}
	if len(rl.routeVisitors) != 0 {
		t.Fatalf("expected route visitors to be swept, got %d", len(rl.routeVisitors))
	}
}

func TestCleanup_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(Limit{PerMinute: 10, Burst: 10}, Limit{PerMinute: 2, Burst: 2}, time.Millisecond)
	rl.getGlobalLimiter("1.1.1.1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Cleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for rl.Visitors() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if got := rl.Visitors(); got != 0 {
		t.Fatalf("expected cleanup loop to sweep visitors, got %d", got)
	}
}

func TestNewRateLimiterFromConfig(t *testing.T) {
	rl := NewRateLimiterFromConfig()
	// config_test.yaml: global 10/10, route 2/2
	if rl.global.PerMinute != 10 || rl.global.Burst != 10 {
		t.Errorf("unexpected global limit %+v", rl.global)
	}
	if rl.route.PerMinute != 2 || rl.route.Burst != 2 {
		t.Errorf("unexpected route limit %+v", rl.route)
	}
	if rl.ttl != 3*time.Minute {
		t.Errorf("unexpected ttl %v", rl.ttl)
	}
	if rl.trustProxy {
		t.Error("expected proxy headers to be untrusted by default")
	}
}
