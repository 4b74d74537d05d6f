package voucher

import (
	"context"
	"fmt"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Query es la vista de lectura de comprobantes (carga del formulario de edición).
type Query struct {
	mov repository.MovementRepository
}

// NewQuery construye la vista de lectura sobre el repo del pool (sin tx).
func NewQuery(mov repository.MovementRepository) *Query {
	return &Query{mov: mov}
}

// GetVoucher devuelve los movimientos del comprobante en orden de creación.
func (q *Query) GetVoucher(ctx context.Context, voucherNumber string) ([]*entity.StockMovement, error) {
	movements, err := q.mov.ListByVoucher(ctx, voucherNumber)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, fmt.Errorf("comprobante %s: %w", voucherNumber, domain.ErrNotFound)
	}
	return movements, nil
}
