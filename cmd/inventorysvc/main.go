package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pema-project/pema/internal/app"
	"github.com/pema-project/pema/internal/config"
	"github.com/pema-project/pema/internal/db"
	"github.com/pema-project/pema/internal/handlers"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/repository/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("service failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.New("inventorysvc")
	if err := cfg.LoadDotEnv(os.Getwd); err != nil {
		return err
	}
	cfg.LoadEnv(os.Getenv)
	if err := cfg.ParseFlags(os.Args[1:]); err != nil {
		return err
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("error while initializing logger: %w", err)
	}

	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_URI is required")
	}

	pool, err := db.ConnectAndMigrate(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("error while connecting to db. Err: %w", err)
	}
	defer pool.Close()

	storage := postgres.NewStorage(pool)

	srv := &app.ServerApp{
		ListenAddr: cfg.ListenAddr,
		Logger:     log,
		Handler: handlers.NewInventoryRouter(storage.Inventory(), handlers.RouterConfig{
			ServiceName:    cfg.ServiceName,
			Logger:         log,
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
	}

	return srv.Run(ctx)
}
