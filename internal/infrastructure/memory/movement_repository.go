package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos en memoria, append-only sobre un slice.
type MovementRepo struct {
	store *Store
}

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

// Create agrega una copia del movimiento al log (asigna ID si viene vacío).
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *m
	r.store.movements = append(r.store.movements, &clone)
	return nil
}

// ListByVoucher devuelve los movimientos del comprobante en orden de inserción.
func (r *MovementRepo) ListByVoucher(ctx context.Context, voucherNumber string) ([]*entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.VoucherNumber == voucherNumber {
			clone := *m
			list = append(list, &clone)
		}
	}
	return list, nil
}

// Delete elimina la fila del log.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, m := range r.store.movements {
		if m.ID == id {
			r.store.movements = append(r.store.movements[:i], r.store.movements[i+1:]...)
			return nil
		}
	}
	return nil
}

// VoucherExists indica si algún movimiento usa ese número.
func (r *MovementRepo) VoucherExists(ctx context.Context, voucherNumber string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.VoucherNumber == voucherNumber {
			return true, nil
		}
	}
	return false, nil
}

// ListForReplay filtra y ordena por fecha, created_at y orden de inserción.
func (r *MovementRepo) ListForReplay(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if matchesFilter(m, f) {
			clone := *m
			list = append(list, &clone)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// SumSignedBefore suma con signo los movimientos anteriores al corte.
func (r *MovementRepo) SumSignedBefore(ctx context.Context, f repository.MovementFilter, before time.Time) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sum := decimal.Zero
	for _, m := range r.store.movements {
		if matchesFilter(m, f) && m.Date.Before(before) {
			sum = sum.Add(m.SignedQuantity())
		}
	}
	return sum, nil
}

// SnapshotAt reconstruye cantidades por ubicación a la fecha dada.
func (r *MovementRepo) SnapshotAt(ctx context.Context, asOf time.Time, f repository.MovementFilter) ([]repository.SnapshotRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	totals := map[string]decimal.Decimal{}
	locations := map[string]entity.StockLocation{}
	var order []string
	for _, m := range r.store.movements {
		if !matchesFilter(m, f) || m.Date.After(asOf) {
			continue
		}
		key := m.Location().Key()
		if _, ok := totals[key]; !ok {
			order = append(order, key)
			locations[key] = m.Location()
		}
		totals[key] = totals[key].Add(m.SignedQuantity())
	}
	sort.Strings(order)

	rows := make([]repository.SnapshotRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, repository.SnapshotRow{Location: locations[key], Quantity: totals[key]})
	}
	return rows, nil
}

func matchesFilter(m *entity.StockMovement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
		return false
	}
	if f.Shelf != nil && m.Shelf != *f.Shelf {
		return false
	}
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	return true
}
