package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-core-api/internal/application/stock"
	"github.com/jhoicas/stock-core-api/internal/domain"
	"github.com/jhoicas/stock-core-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con un
// lock_timeout acotado: si la fila del snapshot está tomada más tiempo del
// configurado, la operación falla con ErrLockTimeout y el caller decide si
// reintenta.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool y la espera máxima de bloqueo.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, fija el lock_timeout, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback. Una cancelación del contexto
// revierte limpiamente sin escrituras parciales.
func (r *TxRunner) Run(ctx context.Context, fn func(
	snapshots repository.StockSnapshotRepository,
	movements repository.StockMovementRepository,
	costHistory repository.CostHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// SET LOCAL aplica solo a esta transacción.
	lockSQL := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, lockSQL); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	snapRepo := NewSnapshotRepository(tx)
	movRepo := NewMovementRepository(tx)
	costRepo := NewCostHistoryRepository(tx)

	if err := fn(snapRepo, movRepo, costRepo); err != nil {
		if isLockTimeout(err) {
			return domain.ErrLockTimeout
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
