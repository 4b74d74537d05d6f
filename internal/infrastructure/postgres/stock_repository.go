package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// shelf_id se guarda como '' a nivel bodega: los dos espacios de identidad no
// pueden confundirse vía NULL y la PK compuesta sigue funcionando.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la cantidad actual de una ubicación (0 si no hay fila).
func (r *StockRepo) Get(ctx context.Context, loc entity.StockLocation) (decimal.Decimal, error) {
	query := `
		SELECT quantity FROM stock
		WHERE product_id = $1 AND warehouse_id = $2 AND shelf_id = $3`
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, query, loc.ProductID, loc.WarehouseID, loc.Shelf.Key()).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get stock: %w", err)
	}
	return qty, nil
}

// Adjust aplica un delta con signo en una sola sentencia atómica.
// Delta positivo: upsert acumulativo. Delta negativo: update condicional que
// solo procede si la cantidad resultante queda >= 0; cero filas afectadas
// significa stock insuficiente (o fila inexistente, que es lo mismo).
func (r *StockRepo) Adjust(ctx context.Context, loc entity.StockLocation, delta decimal.Decimal) error {
	if !delta.IsNegative() {
		query := `
			INSERT INTO stock (product_id, warehouse_id, shelf_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (product_id, warehouse_id, shelf_id)
			DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
		if _, err := r.q.Exec(ctx, query, loc.ProductID, loc.WarehouseID, loc.Shelf.Key(), delta); err != nil {
			return fmt.Errorf("adjust stock (in): %w", err)
		}
		return nil
	}

	query := `
		UPDATE stock SET quantity = quantity + $4, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND shelf_id = $3
		  AND quantity + $4 >= 0`
	tag, err := r.q.Exec(ctx, query, loc.ProductID, loc.WarehouseID, loc.Shelf.Key(), delta)
	if err != nil {
		return fmt.Errorf("adjust stock (out): %w", err)
	}
	if tag.RowsAffected() == 0 {
		// La condición ya decidió; la lectura es solo para el payload del error.
		available, err := r.Get(ctx, loc)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			ProductID:   loc.ProductID,
			WarehouseID: loc.WarehouseID,
			ShelfID:     loc.Shelf.Key(),
			Requested:   delta.Neg(),
			Available:   available,
		}
	}
	return nil
}
