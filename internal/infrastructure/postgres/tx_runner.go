package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ operations.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es el mecanismo de atomicidad del commit de operaciones:
// cambio de estado, movimientos del ledger y saldos materializados van juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	opRepo repository.OperationRepository,
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	opRepo := NewOperationRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	levelRepo := NewStockLevelRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(opRepo, movRepo, levelRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
