package voucher

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// reverseVoucher deshace el efecto completo de un comprobante: aplica el ajuste
// inverso de cada movimiento sobre su ubicación y borra la fila del log.
//
// Orden: primero los OUT originales (su reversa es una suma, siempre segura) y
// después los IN originales (su reversa resta y puede fallar si ese stock ya lo
// consumió un comprobante posterior independiente). Si cualquier ajuste inverso
// falla, la tx que nos envuelve se revierte y el comprobante queda intacto;
// nunca hay reversa parcial.
//
// El orden OUT-antes-que-IN se conserva tal cual como política heredada:
// evita parte de los conflictos entre comprobantes, no todos.
func reverseVoucher(ctx context.Context, mov repository.MovementRepository, stock repository.StockRepository, voucherNumber string) error {
	movements, err := mov.ListByVoucher(ctx, voucherNumber)
	if err != nil {
		return err
	}
	if len(movements) == 0 {
		return fmt.Errorf("comprobante %s: %w", voucherNumber, domain.ErrNotFound)
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Type == entity.MovementTypeOUT && movements[j].Type != entity.MovementTypeOUT
	})

	for _, m := range movements {
		inverse := m.SignedQuantity().Neg()
		if err := stock.Adjust(ctx, m.Location(), inverse); err != nil {
			var insufficient *domain.InsufficientStockError
			if errors.As(err, &insufficient) {
				return &domain.DependentStockError{
					VoucherNumber: voucherNumber,
					ProductID:     insufficient.ProductID,
					WarehouseID:   insufficient.WarehouseID,
					ShelfID:       insufficient.ShelfID,
					Requested:     insufficient.Requested,
					Available:     insufficient.Available,
				}
			}
			return err
		}
		if err := mov.Delete(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}
