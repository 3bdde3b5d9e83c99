package fulfillment

import (
	"context"
	"database/sql"
	"sync"

	dErrors "dropofhope/pkg/domain-errors"
	"dropofhope/pkg/platform/tx"
)

// TxRunner provides the transactional boundary for the fulfillment write
// path. Implementations guarantee that every store call made through the
// callback's context either commits as a whole or leaves no visible effect.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SQLTxRunner scopes the callback to a database transaction carried in the
// context, so the tx-aware stores join it transparently. The database's
// isolation plus the stores' conditional-update guards make concurrent
// fulfillments race-safe without in-process locks.
type SQLTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

func (r *SQLTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sqlTx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "begin fulfillment transaction")
	}
	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "commit fulfillment transaction")
	}
	return nil
}

// Snapshotter captures a store's state and returns a restore function.
// The in-memory stores implement it by cloning their maps.
type Snapshotter interface {
	Snapshot() func()
}

// MemoryTxRunner serializes fulfillments under one lock and emulates rollback
// by restoring store snapshots when the callback fails. Used by tests and
// when the service runs without a database.
//
// Rollback restores whole-store snapshots: a non-transactional write landing
// on a shared store between snapshot and restore is discarded with the failed
// fulfillment. The SQL runner has no such restriction.
type MemoryTxRunner struct {
	mu     sync.Mutex
	stores []Snapshotter
}

func NewMemoryTxRunner(stores ...Snapshotter) *MemoryTxRunner {
	return &MemoryTxRunner{stores: stores}
}

func (r *MemoryTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "fulfillment aborted: context cancelled")
	}

	restores := make([]func(), 0, len(r.stores))
	for _, s := range r.stores {
		restores = append(restores, s.Snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}
