package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
)

// CodeNoTransaction is returned when Commit or Rollback is called without Begin.
const CodeNoTransaction = "NO_TRANSACTION"

type txKey struct{}

type txInfo struct {
	tx bun.Tx
}

// UnitOfWork runs a command's writes in a single Bun transaction carried in the context.
// A Begin inside an existing transaction opens a savepoint in it: Commit releases the
// savepoint and Rollback rolls back to it, so a failed nested unit leaves the outer
// transaction usable. Only the outermost unit commits or rolls back the transaction.
type UnitOfWork struct {
	db   *bun.DB
	opts *sql.TxOptions
}

// NewUnitOfWork creates a unit of work on db. opts may be nil for the driver defaults.
func NewUnitOfWork(db *bun.DB, opts *sql.TxOptions) *UnitOfWork {
	return &UnitOfWork{db: db, opts: opts}
}

// Begin starts a transaction, or a savepoint in the one already in ctx.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	var (
		tx  bun.Tx
		err error
	)
	if info, ok := ctx.Value(txKey{}).(*txInfo); ok {
		tx, err = info.tx.BeginTx(ctx, nil)
	} else {
		tx, err = u.db.BeginTx(ctx, u.opts)
	}
	if err != nil {
		return ctx, errx.Wrap(err)
	}
	return context.WithValue(ctx, txKey{}, &txInfo{tx: tx}), nil
}

// Commit commits the transaction begun with ctx, or releases its savepoint.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	info, err := txFromContext(ctx)
	if err != nil {
		return err
	}
	return errx.Wrap(info.tx.Commit())
}

// Rollback rolls back the transaction begun with ctx, or rolls back to its savepoint.
// Rolling back an already finished transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	info, err := txFromContext(ctx)
	if err != nil {
		return err
	}
	if err := info.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errx.Wrap(err)
	}
	return nil
}

// IDB returns the transaction in ctx, or db when there is none.
// Repositories call it so the same code works inside and outside a unit of work.
func IDB(ctx context.Context, db bun.IDB) bun.IDB {
	if info, ok := ctx.Value(txKey{}).(*txInfo); ok {
		return info.tx
	}
	return db
}

// InTransaction reports whether ctx carries a transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txInfo)
	return ok
}

func txFromContext(ctx context.Context) (*txInfo, error) {
	info, ok := ctx.Value(txKey{}).(*txInfo)
	if !ok {
		return nil, errx.New("[pg]: no transaction in context", errx.WithCode(CodeNoTransaction))
	}
	return info, nil
}
