package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server"
	"github.com/dmitrijs2005/printdraft/internal/server/config"
)

func main() {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "error initializing app", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server error", "error", err)
		os.Exit(1)
	}
}
