package memory

import (
	"context"
	"sync"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Ensure TxRunner implements voucher.TxRunner.
var _ voucher.TxRunner = (*TxRunner)(nil)

// TxRunner imita la transacción de la BD sobre el store: toma una copia del
// estado antes de ejecutar el callback y la restaura si falla. Las tx quedan
// serializadas entre sí por txMu; suficiente para modo desarrollo y tests.
type TxRunner struct {
	store *Store
	txMu  sync.Mutex
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados al store; si fn devuelve error, restaura el
// estado previo (equivalente al Rollback).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.snapshot()
	err := fn(NewMovementRepository(r.store), NewStockRepository(r.store), NewSequenceRepository(r.store))
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
