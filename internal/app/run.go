package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/pscheid92/hello-env/internal/adapter/httpserver"
	"github.com/pscheid92/hello-env/internal/adapter/metrics"
	"github.com/pscheid92/hello-env/internal/bootstrap"
	"github.com/pscheid92/hello-env/internal/platform/config"
	"github.com/pscheid92/hello-env/internal/platform/logging"
	"github.com/pscheid92/hello-env/internal/platform/version"
)

type Options struct {
	// LoadSecrets runs the secrets bootstrap before configuration is built
	// and adds the database segment to the greeting.
	LoadSecrets bool
}

// server is the part of httpserver.Server and metrics.AdminServer that Run drives.
type server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Run starts the service and blocks until ctx is cancelled or the public
// server fails. Cancelling ctx triggers a graceful shutdown.
func Run(ctx context.Context, opts Options) error {
	secrets, err := loadSecrets(opts)
	if err != nil {
		return err
	}

	cfg, err := config.Load(secrets)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "addr", cfg.Addr(), "build", version.Get())
	if opts.LoadSecrets {
		slog.Info("Secrets bootstrap finished", "secrets_file", cfg.SecretsFile, "keys", len(secrets))
	}

	reg := metrics.NewRegistry()
	metrics.NewBuildInfo(reg, version.Get())

	serverOpts := []httpserver.Option{httpserver.WithMetrics(metrics.NewHTTPMetrics(reg))}
	if opts.LoadSecrets {
		serverOpts = append(serverOpts, httpserver.WithDBGreeting())
	}
	servers := []server{httpserver.NewServer(cfg, serverOpts...)}

	if cfg.MetricsPort != "" {
		servers = append(servers, metrics.NewAdminServer(net.JoinHostPort(cfg.Host, cfg.MetricsPort), reg))
	}

	return serve(ctx, cfg, servers)
}

func loadSecrets(opts Options) (map[string]string, error) {
	if !opts.LoadSecrets {
		return nil, nil
	}

	secrets, err := bootstrap.NewLoader(config.SecretsPath()).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap secrets: %w", err)
	}
	return secrets, nil
}

// serve runs every server until ctx is done or one of them fails, then shuts
// all of them down. The first failure is returned.
func serve(ctx context.Context, cfg *config.Config, servers []server) error {
	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received, cleaning up...")
	case runErr = <-errCh:
		if runErr != nil {
			slog.Error("Server error", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}

	return runErr
}
