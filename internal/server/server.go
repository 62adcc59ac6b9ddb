// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	POST /v1/render    document in, one artifact out (?format=svg|png|pdf|json|dot)
//	POST /v1/layout    document in, computed geometry out as JSON
//	POST /v1/validate  document in, validation result out
//	POST /v1/pathway   document in, Graphviz pathway out
//	GET  /healthz      liveness
//	GET  /version      build information
//	GET  /metrics      Prometheus metrics
//
// Documents are JSON, TOML or YAML, selected by the request Content-Type.
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/energydiagram/pkg/cache"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// KeyPrefix scopes the server's artifact cache keys so a shared cache
	// does not mix them with CLI entries.
	KeyPrefix = "api:"
)

// Config configures a [Server]. Zero fields take the defaults.
type Config struct {
	Addr           string
	Runner         *pipeline.Runner
	Logger         *log.Logger
	Metrics        *Metrics
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// Server is the HTTP render service.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	router  chi.Router
}

// New creates a server. A nil Runner gets an uncached runner with the
// server's key prefix; a nil Metrics gets a fresh registry.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cache.NewScopedKeyer(nil, KeyPrefix), cfg.Logger)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = docio.MaxDocumentSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{
		cfg:     cfg,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
		r.Post("/validate", s.handleValidate)
		r.Post("/pathway", s.handlePathway)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.RequestTimeout,
		WriteTimeout:      s.cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", DefaultShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
