package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger en memoria. El mutex del store da la misma garantía que el
// update condicional de la BD: comparar y ajustar bajo una sola sección crítica.
type StockRepo struct {
	store *Store
}

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

// Get devuelve la cantidad actual (0 si no hay entrada).
func (r *StockRepo) Get(ctx context.Context, loc entity.StockLocation) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if qty, ok := r.store.stock[loc.Key()]; ok {
		return qty, nil
	}
	return decimal.Zero, nil
}

// Adjust aplica el delta bajo el lock: la comparación y la escritura son un
// solo paso, nunca leer-y-escribir por separado.
func (r *StockRepo) Adjust(ctx context.Context, loc entity.StockLocation, delta decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current := r.store.stock[loc.Key()]
	next := current.Add(delta)
	if next.IsNegative() {
		return &domain.InsufficientStockError{
			ProductID:   loc.ProductID,
			WarehouseID: loc.WarehouseID,
			ShelfID:     loc.Shelf.Key(),
			Requested:   delta.Neg(),
			Available:   current,
		}
	}
	r.store.stock[loc.Key()] = next
	return nil
}
