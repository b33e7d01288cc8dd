package components

import (
	"log/slog"

	"parking-core/internal/infra/lock"
	"parking-core/internal/infra/memstore"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/uow"
	"parking-core/internal/pkg/config"
	"parking-core/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewQueries,
		NewUnitOfWork,
		NewSpotLocker,
	),
)

func NewQueries() *pgquery.Queries {
	return pgquery.New()
}

// NewUnitOfWork falls back to the in-memory store when no pool was opened.
func NewUnitOfWork(pool *pgxpool.Pool, q *pgquery.Queries, cfg config.Config, logger *slog.Logger) shared.UnitOfWork {
	if pool == nil {
		return memstore.NewStore()
	}
	return uow.NewPostgresUoW(pool, q, uow.Options{LockTimeout: cfg.Lock.Timeout}, logger)
}

// NewSpotLocker always serializes in process and adds the Redis lease when
// a client is configured, so several instances can share one database.
func NewSpotLocker(cfg config.Config, client *redis.Client, logger *slog.Logger) shared.SpotLocker {
	local := lock.NewKeyedLocker(cfg.Lock.Timeout)
	if client == nil {
		return local
	}
	return lock.Chain{
		local,
		lock.NewRedisLocker(client, lock.RedisOptions{
			Prefix:        cfg.Lock.RedisPrefix,
			TTL:           cfg.Lock.TTL,
			Timeout:       cfg.Lock.Timeout,
			RetryInterval: cfg.Lock.RetryInterval,
		}, logger),
	}
}
