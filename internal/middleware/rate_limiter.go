package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and last seen time for one key.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limit is a token bucket expressed in requests per minute.
type Limit struct {
	PerMinute float64
	Burst     int
}

// RateLimiter enforces a per-IP limit across the gateway and a tighter
// per-IP limit on each route.
type RateLimiter struct {
	global Limit
	route  Limit
	ttl    time.Duration
	// trustProxy keys buckets on forwarding headers instead of the socket peer.
	trustProxy bool

	mu             sync.Mutex
	globalVisitors map[string]*visitor            // key: ip
	routeVisitors  map[string]map[string]*visitor // key: ip -> route pattern
	now            func() time.Time
}

func NewRateLimiter(global, route Limit, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		global:         global,
		route:          route,
		ttl:            ttl,
		globalVisitors: make(map[string]*visitor),
		routeVisitors:  make(map[string]map[string]*visitor),
		now:            time.Now,
	}
}

// NewRateLimiterFromConfig reads the limits from the rate_limiter config block.
func NewRateLimiterFromConfig() *RateLimiter {
	gRate, gBurst := config.GetGlobalRateLimiterConfig()
	rRate, rBurst := config.GetRouteRateLimiterConfig()
	return NewRateLimiter(
		Limit{PerMinute: gRate, Burst: gBurst},
		Limit{PerMinute: rRate, Burst: rBurst},
		config.GetRateLimiterCleanupTimeout(),
	).TrustProxyHeaders(config.TrustProxyHeaders())
}

// TrustProxyHeaders makes the limiter identify clients by X-Forwarded-For or
// X-Real-IP. Any client can set those headers, so only enable it behind a
// proxy that overwrites them.
func (rl *RateLimiter) TrustProxyHeaders(trust bool) *RateLimiter {
	rl.trustProxy = trust
	return rl
}

func (rl *RateLimiter) getGlobalLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, exists := rl.globalVisitors[ip]
	if !exists {
		v = &visitor{limiter: newLimiter(rl.global)}
		rl.globalVisitors[ip] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

func (rl *RateLimiter) getRouteLimiter(ip, route string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.routeVisitors[ip]; !ok {
		rl.routeVisitors[ip] = make(map[string]*visitor)
	}
	v, exists := rl.routeVisitors[ip][route]
	if !exists {
		v = &visitor{limiter: newLimiter(rl.route)}
		rl.routeVisitors[ip][route] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

func newLimiter(l Limit) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(l.PerMinute/60.0), l.Burst)
}

// Sweep removes visitors not seen for longer than the configured ttl.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, v := range rl.globalVisitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.globalVisitors, ip)
		}
	}
	for ip, routes := range rl.routeVisitors {
		for route, v := range routes {
			if now.Sub(v.lastSeen) > rl.ttl {
				delete(routes, route)
			}
		}
		if len(routes) == 0 {
			delete(rl.routeVisitors, ip)
		}
	}
}

// Cleanup sweeps stale visitors every interval until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep()
		}
	}
}

// Visitors returns the number of tracked IPs.
func (rl *RateLimiter) Visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.globalVisitors)
}

// clientIP identifies the client by its socket peer, or by the forwarding
// headers when they are trusted.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}
		if xrip := strings.TrimSpace(r.Header.Get("X-Real-IP")); xrip != "" {
			return xrip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr // fallback
	}
	return ip
}

// routeKey prefers the matched chi pattern so /content/blog and
// /content/projects share the /content/{resource} bucket.
func routeKey(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return r.Method + " " + pattern
		}
	}
	return r.Method + " " + r.URL.Path
}

// Middleware answers 429 with a JSON error once either bucket is empty.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		if !rl.getGlobalLimiter(ip).Allow() {
			writeTooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per user/IP", rl.global.PerMinute),
				"Too Many Requests (global limit)")
			return
		}
		if !rl.getRouteLimiter(ip, routeKey(r)).Allow() {
			writeTooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per route per user/IP", rl.route.PerMinute),
				"Too Many Requests (per-route limit)")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeTooManyRequests(w http.ResponseWriter, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	resp := model.Response{
		Error:   &errMsg,
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
