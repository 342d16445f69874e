package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mealscan_backend/internal/app/di"
	"mealscan_backend/internal/app/router"
	"mealscan_backend/internal/platform/config"
	platformdb "mealscan_backend/internal/platform/db"
	"mealscan_backend/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()
	log.Info("starting mealscan",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.DB.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// db, redis
	infra, err := di.OpenInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Error("failed to close connections", zap.Error(err))
		}
	}()

	app, err := di.NewApp(cfg, infra.DB, infra.Redis, log)
	if err != nil {
		return err
	}

	if cfg.DB.Seed {
		if _, err := platformdb.Seed(ctx, infra.DB, app.Credentials, log); err != nil {
			return err
		}
	}
	if n, err := app.Auth.PurgeExpiredSessions(ctx); err != nil {
		log.Warn("failed to purge expired sessions", zap.Error(err))
	} else if n > 0 {
		log.Info("purged expired sessions", zap.Int64("count", n))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.NewRouter(cfg, app, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
