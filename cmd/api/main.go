package main

import (
	"context"
	"log/slog"
	"os"

	"perseval/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed", "event", "bootstrap_failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("api server stopped", "event", "http_server_stopped", "error", err.Error())
		os.Exit(1)
	}
}
