package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// StockRepository es el ledger autoritativo de cantidades por ubicación.
// Las filas se crean de forma perezosa en la primera referencia y solo se
// mutan a través de Adjust; nunca se borran desde este núcleo.
type StockRepository interface {
	// Get devuelve la cantidad actual de la ubicación (0 si no hay fila).
	Get(ctx context.Context, loc entity.StockLocation) (decimal.Decimal, error)

	// Adjust aplica un delta con signo de forma atómica. Un delta negativo solo
	// procede si el resultado queda >= 0 (update condicional en una sola
	// sentencia, nunca leer-y-escribir en dos pasos); si no alcanza, devuelve
	// *domain.InsufficientStockError. Un delta positivo siempre procede,
	// creando la fila si no existe.
	Adjust(ctx context.Context, loc entity.StockLocation, delta decimal.Decimal) error
}
