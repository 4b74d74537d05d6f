package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// InsufficientStockError indica que un ajuste de salida dejaría la ubicación en negativo.
// Lleva la ubicación afectada, la cantidad pedida y la disponible.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	ShelfID     string // vacío = nivel bodega
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s en bodega %s (pedido %s, disponible %s)",
		e.ProductID, e.WarehouseID, e.Requested.String(), e.Available.String())
}

// Is permite errors.Is(err, domain.ErrConflict) sobre este tipo.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrConflict }

// DependentStockError indica que una reversa/edición está bloqueada porque el stock
// afectado ya fue consumido por otro comprobante posterior e independiente.
type DependentStockError struct {
	VoucherNumber string
	ProductID     string
	WarehouseID   string
	ShelfID       string
	Requested     decimal.Decimal
	Available     decimal.Decimal
}

func (e *DependentStockError) Error() string {
	return fmt.Sprintf("no se puede revertir el comprobante %s: el stock del producto %s en bodega %s ya fue consumido (se necesita %s, queda %s)",
		e.VoucherNumber, e.ProductID, e.WarehouseID, e.Requested.String(), e.Available.String())
}

func (e *DependentStockError) Is(target error) bool { return target == ErrConflict }

// SequenceConflictError indica que el identificador generado ya existe; el llamador debe reintentar.
type SequenceConflictError struct {
	Kind   string
	Number string
}

func (e *SequenceConflictError) Error() string {
	return fmt.Sprintf("el identificador generado %q para la secuencia %q ya existe", e.Number, e.Kind)
}

func (e *SequenceConflictError) Is(target error) bool { return target == ErrConflict }
