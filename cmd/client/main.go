package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/printdraft/internal/client/cli"
	"github.com/dmitrijs2005/printdraft/internal/client/config"
	"github.com/dmitrijs2005/printdraft/internal/logging"
)

func main() {
	logFile, err := os.OpenFile("printdraft.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		os.Exit(1)
	}
	defer logFile.Close()

	// stdout belongs to the wizard; logs go to a file
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logFile, nil)))

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "error initializing app", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
