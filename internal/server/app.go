// Package server initializes and runs the development backend: it wires the
// configured storage backend, the order registry and the HTTP surface, and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/printdraft/internal/logging"
	"github.com/dmitrijs2005/printdraft/internal/server/config"
	"github.com/dmitrijs2005/printdraft/internal/server/handlers"
	"github.com/dmitrijs2005/printdraft/internal/server/orders"
	"github.com/dmitrijs2005/printdraft/internal/server/storage"
	"github.com/dmitrijs2005/printdraft/internal/server/storage/memory"
	"github.com/dmitrijs2005/printdraft/internal/server/storage/s3"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	engine *gin.Engine
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var st storage.Storage
	switch c.StorageBackend {
	case "memory":
		st = memory.New(c.PublicBaseURL)
	case "s3":
		s3st, err := s3.New(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		st = s3st
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	svc := orders.NewService(st, logger)

	engine := gin.New()
	engine.Use(gin.Recovery())
	handlers.SetupRoutes(engine, handlers.New(svc, st, logger))

	return &App{config: c, logger: logger, engine: engine}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.engine,
	}

	app.logger.Info(ctx, "starting server", "addr", app.config.Addr, "storage", app.config.StorageBackend)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		app.logger.Info(shutdownCtx, "shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
