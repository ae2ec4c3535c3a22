package components

import (
	"context"
	"fmt"
	"log/slog"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra/catalog"
	"qomo-drops/internal/infra/statestore"
	"qomo-drops/internal/pkg/config"
	"qomo-drops/internal/usecase/commands"
	"qomo-drops/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			NewCatalog,
			fx.As(new(commands.Catalog)),
			fx.As(new(queries.Catalog)),
		),
		fx.Annotate(
			NewStateStore,
			fx.As(new(commands.StateStore)),
			fx.As(new(queries.StateReader)),
		),
	),
)

func NewCatalog(cfg config.Config) (*catalog.StaticCatalog, error) {
	return catalog.New(cfg.Catalog)
}

// NewStateStore builds the drop-state store selected by STORE_DRIVER and
// seeds it with a fresh state per catalog entry. Existing states are never
// overwritten by seeding.
func NewStateStore(lc fx.Lifecycle, cfg config.Config, cat commands.Catalog, logger *slog.Logger) (commands.StateStore, error) {
	configs := cat.All()
	seed := make([]drop.State, 0, len(configs))
	for _, c := range configs {
		seed = append(seed, drop.NewState(c))
	}

	switch cfg.Store.Driver {
	case "memory":
		return statestore.NewMemoryStore(logger, seed), nil

	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.Store.BuildDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				pool.Close()
				return nil
			},
		})
		return statestore.NewPostgresStore(context.Background(), pool, logger, seed)

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Store.RedisAddr,
			DB:   cfg.Store.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		return statestore.NewRedisStore(context.Background(), client, logger, seed)

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
