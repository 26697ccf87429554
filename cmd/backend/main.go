package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	configloader "github.com/tuancreations/livesession/external/config"
	"github.com/tuancreations/livesession/external/discord"
	notifierimpl "github.com/tuancreations/livesession/external/notifier"
	repositoryimpl "github.com/tuancreations/livesession/external/repository"
	seedloader "github.com/tuancreations/livesession/external/seed"
	"github.com/tuancreations/livesession/internal/config"
	"github.com/tuancreations/livesession/internal/liveview"
	"github.com/tuancreations/livesession/internal/repository"
	"github.com/tuancreations/livesession/internal/server"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "auto_go_live", cfg.AutoGoLive, "discord", cfg.DiscordEnabled())

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching http server")
	if err := runServer(cfg, injector); err != nil {
		slog.Error("service failed", "error", err)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	seedloader.RegisterDI(injector)
	discord.RegisterDI(injector)
	notifierimpl.RegisterDI(injector)
	liveview.RegisterDI(injector)

	return injector
}

func runServer(cfg *config.Config, injector do.Injector) error {
	repo, err := do.Invoke[repository.Repository](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve subscription repository: %w", err)
	}
	defer repo.Close()

	subs, err := do.Invoke[repository.SubscriptionRepository](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve subscription store: %w", err)
	}

	views, err := do.Invoke[*liveview.Manager](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve view manager: %w", err)
	}
	defer views.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, server.StartOpts{
		Addr:          cfg.HTTPAddr,
		Views:         views,
		Subscriptions: subs,
		Debug:         cfg.IsDevelopment(),
	})
}
