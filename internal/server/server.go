// Package server exposes an asset network over an HTTP JSON API.
//
// Routes live under /api/v1:
//
//	GET  /health
//	GET  /assets
//	POST /assets
//	GET  /assets/{id}/relationships
//	POST /events
//	POST /relationships
//	POST /discover
//	GET  /metrics
//	GET  /visualization?seed=N&refresh=true
//
// The network is built on first use through a [network.Lazy]. Mutating
// handlers take the write lock; reads share the read lock.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/assetgraph/pkg/config"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/observability"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 15 * time.Second
	maxBodyBytes    = 1 << 20
)

// Options configures a Server.
type Options struct {
	Config   config.ServerConfig
	Network  *network.Lazy
	Runner   *pipeline.Runner
	Pipeline pipeline.Options // base layout options for /visualization
	Logger   *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    config.ServerConfig
	nw     *network.Lazy
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger

	mu sync.RWMutex
}

// New creates a server with all routes and middleware. A nil Runner gets
// an uncached runner.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	nw := opts.Network
	if nw == nil {
		nw = network.NewLazy(func() (*network.Network, error) {
			return network.New(network.DefaultOptions())
		})
	}
	s := &Server{
		cfg:    opts.Config,
		nw:     nw,
		runner: runner,
		base:   opts.Pipeline,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = config.DefaultServerAddr
	}
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	origins := []string{"*"}
	if len(s.cfg.CORSOrigins) > 0 {
		origins = s.cfg.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/assets", s.handleListAssets)
		r.Post("/assets", s.handleAddAsset)
		r.Get("/assets/{id}/relationships", s.handleAssetRelationships)

		r.Post("/events", s.handleAddEvent)
		r.Post("/relationships", s.handleAddRelationship)

		r.Post("/discover", s.handleDiscover)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/visualization", s.handleVisualization)
	})

	return r
}

// observe reports every request to the HTTP hooks and logs it at debug.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
