package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/trawl/internal/logger"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8009"

// AppName is reported by the health endpoint.
const AppName = "trawl"

// Server serves the gateway HTTP API.
type Server struct {
	ports   *Ports
	version string
	started time.Time
	now     func() time.Time
	router  chi.Router
}

// NewServer creates a server for the given ports.
// The version string is reported by the health endpoint.
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:   ports,
		version: version,
		now:     time.Now,
	}
	s.started = s.now()
	s.router = s.routes()

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsPolicy())
	r.Use(middleware.StripSlashes)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/trending", s.handleTrending)
		r.Get("/recent", s.handleRecent)
		r.Get("/category", s.handleCategory)

		r.Route("/all", func(r chi.Router) {
			r.Get("/search", s.handleAllSearch)
			r.Get("/trending", s.handleAllTrending)
			r.Get("/recent", s.handleAllRecent)
		})

		r.Get("/sites", s.handleSites)
		r.Get("/sites/config", s.handleSitesConfig)
		r.Get("/stats", s.handleStats)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method Not Allowed"})
	})

	return r
}

// Run listens on addr and serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http api listening on %s", addr)

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
