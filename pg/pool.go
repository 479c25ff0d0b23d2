package pg

import (
	"context"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgx connection pool for cfg.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, errx.Wrap(err)
	}

	// zero values keep the pgx defaults
	if cfg.PoolMaxConns > 0 {
		poolConfig.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		poolConfig.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolMaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return pool, nil
}
