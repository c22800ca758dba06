package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/platform/tx"
)

// defaultTxTimeout bounds a single order transaction.
const defaultTxTimeout = 5 * time.Second

// PostgresTx runs order mutations inside a database transaction. The
// transaction is carried through the context so PostgresStore writes join it.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPostgresTx constructs a PostgreSQL transaction runner.
func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTransient, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}
