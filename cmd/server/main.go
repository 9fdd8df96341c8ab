package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/config"
	"saassyadmin/internal/i18n"
	"saassyadmin/internal/infra"
	"saassyadmin/internal/migrations"
	"saassyadmin/internal/server"
	"saassyadmin/internal/theme"
)

func main() {
	envFile := config.LoadDotEnvUp(8)

	logger, _ := zap.NewProduction()
	if os.Getenv("APP_ENV") == config.EnvLocal {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	if envFile != "" {
		logger.Info("loaded env file", zap.String("path", envFile))
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if err := i18n.Load(); err != nil {
		logger.Fatal("i18n load failed", zap.Error(err))
	}

	themeCfg, err := theme.LoadFile(cfg.ThemeFile)
	if err != nil {
		logger.Fatal("theme load failed", zap.Error(err), zap.String("file", cfg.ThemeFile))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	infraDeps, err := infra.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("infra init failed", zap.Error(err))
	}
	defer infraDeps.Close()

	var repo accounts.Repository = accounts.NewMemoryRepo()
	if infraDeps.PG != nil {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		repo = accounts.NewPGRepo(infraDeps.PG)
	}

	handler, err := server.NewRouter(cfg, server.Deps{
		Accounts: repo,
		Redis:    infraDeps.Redis,
		Theme:    themeCfg,
	}, logger)
	if err != nil {
		logger.Fatal("router init failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
