package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/semanario-hq/semanario/internal/app"
	"github.com/semanario-hq/semanario/internal/config"
	"github.com/semanario-hq/semanario/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "digest failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ParseFlags(cfg, os.Args[1:]); err != nil {
		return err
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	// the config carries the token, so only name the app here
	logger.DebugObj("digest starting", "app", cfg.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digest, err := app.New(ctx, cfg, logger.Std{})
	if err != nil {
		logger.ErrorObj("failed to initialize digest", "error", err)
		return err
	}
	defer digest.Close()

	if err := digest.Run(ctx); err != nil {
		return fmt.Errorf("digest run: %w", err)
	}

	return nil
}
