// Package pg connects to PostgreSQL through pgx and the Bun ORM and provides the
// transactional unit of work used by the saving command wrapper.
package pg

import (
	"context"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/rise-and-shine/cmdpipe/observability/logger"
	"github.com/rise-and-shine/cmdpipe/pg/hooks"
)

// NewBunDB opens a pgx pool for cfg and wraps it in a Bun database.
// Queries are traced with bunotel; with cfg.Debug they are also logged through log.
func NewBunDB(ctx context.Context, cfg Config, log logger.Logger) (*bun.DB, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	db := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	applyHooks(db, cfg, log)

	return db, nil
}

func applyHooks(db *bun.DB, cfg Config, log logger.Logger) {
	db.AddQueryHook(hooks.NewDebugHook(
		hooks.WithEnabled(cfg.Debug),
		hooks.WithLogger(log),
		hooks.WithSlowQueryThreshold(cfg.SlowQueryThreshold),
	))
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))
}
