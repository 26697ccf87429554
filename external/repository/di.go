package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
	"github.com/tuancreations/livesession/internal/config"
	"github.com/tuancreations/livesession/internal/repository"
)

const storeInitTimeout = 15 * time.Second

// RegisterDI provides the subscription store as repository.Repository for
// lifecycle owners and as repository.SubscriptionRepository for handlers.
// Both resolve to the same pool.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), storeInitTimeout)
		defer cancel()
		return OpenSubscriptionStore(ctx, cfg.DatabaseURL)
	})
	do.Provide(injector, func(i do.Injector) (repository.SubscriptionRepository, error) {
		return do.Invoke[repository.Repository](i)
	})
}

// OpenSubscriptionStore connects, checks the connection, and applies the
// subscriptions schema before handing out the store.
func OpenSubscriptionStore(ctx context.Context, databaseURL string) (repository.Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription store url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open subscription store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("subscription store unreachable: %w", err)
	}
	if err := RunMigration(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate subscription store: %w", err)
	}
	slog.Info("subscription store ready", "host", poolCfg.ConnConfig.Host, "database", poolCfg.ConnConfig.Database)
	return NewPostgresRepository(pool), nil
}
