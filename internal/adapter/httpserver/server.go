package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/hello-env/internal/adapter/metrics"
	"github.com/pscheid92/hello-env/internal/platform/config"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config

	includeDB bool
	metrics   *metrics.HTTPMetrics
}

type Option func(*Server)

// WithDBGreeting makes the root route report the database password as well.
func WithDBGreeting() Option {
	return func(s *Server) { s.includeDB = true }
}

func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(s *Server) { s.metrics = m }
}

func NewServer(cfg *config.Config, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:   e,
		config: cfg,
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	slog.Info("Starting server", "addr", s.config.Addr())
	if err := s.echo.Start(s.config.Addr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
