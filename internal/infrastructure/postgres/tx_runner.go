package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

var _ appbilling.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger opens a transaction, runs fn with a client repository bound to
// it and commits, or rolls back on error. The invoice batch applies all of
// its ledger updates through one call so a failure leaves no partial
// ledger state.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(clients repository.ClientRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClientRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
