// Command server-secrets is the server variant that loads the mounted secrets
// file (SECRETS_FILE, default /vault/secrets/config) before starting.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pscheid92/hello-env/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Options{LoadSecrets: true}); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
