package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Ensure TxRunner implements voucher.TxRunner.
var _ voucher.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Toda operación mutadora del motor (registrar, editar, eliminar comprobantes)
// corre entera dentro de una tx: o commitean todos los pares movimiento+ajuste,
// o ninguno. La asignación de secuencia también vive dentro de la tx, así un
// comprobante fallido no consume número (el rollback revierte el contador).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	stockRepo := NewStockRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(movRepo, stockRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
