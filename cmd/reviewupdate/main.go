package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sqlstore "github.com/ericfisherdev/bookreview/internal/adapter/driven/sqlstore"
	"github.com/ericfisherdev/bookreview/internal/adapter/driving/cli"
	"github.com/ericfisherdev/bookreview/internal/application"
	"github.com/ericfisherdev/bookreview/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Debug("config loaded",
		"db_driver", cfg.DBDriver,
		"db_addr", cfg.Addr(),
		"db_name", cfg.DBName,
		"db_path", cfg.DBPath,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect. A failed connection is logged and the session still starts;
	// every update then reports the connection error.
	db := sqlstore.Connect(ctx, cfg, logger)
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	// 4. Wire adapters.
	reviewStore := sqlstore.NewReviewRepo(db)
	updater := application.NewReviewUpdater(reviewStore, logger)
	loop := cli.NewPromptLoop(os.Stdin, os.Stdout, updater, logger)

	// 5. Run the interactive session until the user stops.
	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, cli.ErrSessionHalted) {
			slog.Error("review session halted", "error", err)
			return nil
		}
		return err
	}

	return nil
}
