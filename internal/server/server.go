package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/seekplan/internal/config"
	"github.com/me/seekplan/internal/metrics"
	"github.com/me/seekplan/internal/scheduler"
	"github.com/me/seekplan/internal/store"
	"golang.org/x/time/rate"
)

// Server is the seekplan REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	engine    *scheduler.Engine
	store     store.Store      // optional; nil disables run history
	metrics   *metrics.Metrics // optional; nil disables /metrics
	limiter   *rate.Limiter    // nil when rate limiting is off
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithStore enables persisted runs and the /runs endpoints.
func WithStore(st store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithMetrics enables request and run metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		engine:    scheduler.NewEngine(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	if s.metrics != nil {
		r.Use(metricsMiddleware(s.metrics))
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimitMiddleware(s.limiter, s.metrics))
		}

		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Scheduling
		r.Post("/schedule", s.handleSchedule)
		r.Post("/compare", s.handleCompare)

		// Policies
		r.Route("/policies", func(r chi.Router) {
			r.Get("/", s.handleListPolicies)
			if s.store != nil {
				r.Get("/{policy}/latest", s.handleLatestRun)
			}
		})

		// Run history
		if s.store != nil {
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", s.handleListRuns)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetRun)
					r.Delete("/", s.handleDeleteRun)
					r.Get("/plot", s.handlePlotRun)
				})
			})
		}
	})
}
