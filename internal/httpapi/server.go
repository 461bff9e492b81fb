// Package httpapi serves the local read and backup API over the workspace
// store.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"pkt.systems/pslog"

	"github.com/rcliao/tabspace/internal/store"
)

// Config holds API server configuration.
type Config struct {
	Listen string
	// MaxImportBytes bounds POST /api/import bodies.
	MaxImportBytes int64
}

// Server is the HTTP API server.
type Server struct {
	config    Config
	repo      store.Repository
	logger    pslog.Logger
	server    *http.Server
	startedAt time.Time
	now       func() time.Time
}

// New creates a Server over repo. Search is answered when repo implements
// store.Searcher.
func New(config Config, repo store.Repository, logger pslog.Logger) *Server {
	if config.MaxImportBytes <= 0 {
		config.MaxImportBytes = 32 << 20
	}
	return &Server{
		config:    config,
		repo:      repo,
		logger:    logger,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/workspaces", s.handleListWorkspaces)
		r.Get("/workspaces/{id}", s.handleGetWorkspace)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Get("/search", s.handleSearch)
	})

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
