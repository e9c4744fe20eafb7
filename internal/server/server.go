// Package server assembles the demo-mode gateway: routes, middleware and the
// http.Server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sarif-mia/agency-website-sub000/internal/client"
	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/handler"
	"github.com/sarif-mia/agency-website-sub000/internal/metrics"
	"github.com/sarif-mia/agency-website-sub000/internal/middleware"
	"github.com/sarif-mia/agency-website-sub000/internal/redis"
	"github.com/sarif-mia/agency-website-sub000/internal/repository"
	"github.com/sarif-mia/agency-website-sub000/internal/service"
	"go.uber.org/zap"
)

const redisPingTimeout = 2 * time.Second

// Deps are the collaborators the gateway routes to.
type Deps struct {
	Client   *client.Client
	Content  service.ContentServiceInterface
	Leads    service.LeadServiceInterface
	Limiter  *middleware.RateLimiter
	Gatherer prometheus.Gatherer
	Logger   *zap.SugaredLogger
	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool
}

type Server struct {
	router     *chi.Mux
	limiter    *middleware.RateLimiter
	logger     *zap.SugaredLogger
	trustProxy bool
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = config.GetLogger()
	}
	if deps.Limiter == nil {
		deps.Limiter = middleware.NewRateLimiterFromConfig()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.NewRegistry()
	}
	s := &Server{
		router:     chi.NewRouter(),
		limiter:    deps.Limiter,
		logger:     deps.Logger,
		trustProxy: deps.TrustProxyHeaders,
	}
	s.setupMiddleware()
	s.setupRoutes(deps)
	return s
}

// NewFromConfig wires the gateway from configuration. Snapshots fall back to
// a no-op store when Redis is disabled or does not answer.
func NewFromConfig(ctx context.Context) *Server {
	logger := config.GetLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewClientMetrics(reg)

	c := client.NewFromConfig(client.WithMetrics(m))
	logger.Infow("Using agency API", "base_url", c.BaseURL())

	return New(Deps{
		Client:   c,
		Content:  service.NewContentService(c, snapshotRepository(ctx, logger), m),
		Leads:    service.NewLeadService(c),
		Gatherer: reg,
		Logger:   logger,

		TrustProxyHeaders: config.TrustProxyHeaders(),
	})
}

func snapshotRepository(ctx context.Context, logger *zap.SugaredLogger) repository.SnapshotRepository {
	if !config.SnapshotsEnabled() {
		return repository.NewNoopRepository()
	}
	rc := redis.GetClient()
	if err := redis.Ping(ctx, rc, redisPingTimeout); err != nil {
		logger.Warnw("Redis unavailable, content snapshots disabled", "addr", config.GetRedisAddr(), "error", err)
		return repository.NewNoopRepository()
	}
	return repository.NewSnapshotRepository(rc)
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	if s.trustProxy {
		s.router.Use(chimiddleware.RealIP)
	}
	s.router.Use(middleware.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
}

func (s *Server) setupRoutes(deps Deps) {
	content := handler.NewContentHandler(deps.Content)
	leads := handler.NewLeadHandler(deps.Leads)
	health := handler.NewHealthHandler(deps.Client)

	s.router.Get("/health", health.HandleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	s.router.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware)

		r.Get("/content/help/category/{value}", content.HandleListBy("help"))
		r.Get("/content/case-studies/industry/{value}", content.HandleListBy("case-studies"))
		r.Get("/content/{resource}", content.HandleList)
		r.Get("/content/{resource}/{slug}", content.HandleDetail)

		r.Post("/leads/contact", leads.HandleContact)
		r.Post("/leads/quick-contact", leads.HandleQuickContact)
		r.Post("/leads/newsletter", leads.HandleNewsletter)
		r.Post("/leads/meetings", leads.HandleMeeting)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on the configured port until ctx is cancelled, then shuts down
// gracefully within server.shutdown_timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+config.GetServerPort())
	if err != nil {
		return fmt.Errorf("listening on port %s: %w", config.GetServerPort(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.Cleanup(cleanupCtx, time.Minute)

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Infow("Gateway listening", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Infow("Shutting down gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			config.GetServerTimeoutDuration("shutdown_timeout", 10*time.Second))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("Gateway forced to shutdown", "error", err)
			return err
		}
	}
	return nil
}
