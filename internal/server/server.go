// Package server exposes the generator over HTTP.
//
// Routes:
//
//	GET /v1/mondrian.{svg,png,json}?seed=&size=&step=&strategy=&stroke=&scale=
//	GET /v1/seed
//	GET /healthz
//	GET /metrics
//
// Every request regenerates its frame from the seed; nothing is cached
// server-side. Responses for an explicit seed are deterministic and marked
// immutable for HTTP caches.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Defaults supplies every generation parameter a request does not set.
	Defaults config.Config
	// Logger receives request and lifecycle logs. Nil discards them.
	Logger *log.Logger
	// Metrics enables /metrics when set.
	Metrics *Metrics
}

// Server serves generated frames.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	router chi.Router
	logger *log.Logger
}

// New builds a server and its router.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/mondrian.{format}", s.handleMondrian)
		r.Get("/seed", s.handleSeed)
	})
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Metrics.Registry(), promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
