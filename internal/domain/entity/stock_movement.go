package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del movimiento.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Tipo de transacción del comprobante al que pertenece el movimiento.
const (
	TransactionTypeStandard   = "STANDARD"
	TransactionTypeTransfer   = "TRANSFER"
	TransactionTypeProduction = "PRODUCTION"
)

// StockMovement es un cambio de cantidad con signo en una ubicación, registrado
// de forma permanente. Inmutable una vez escrito: la edición de un comprobante
// reemplaza su conjunto completo de movimientos, nunca actualiza filas.
type StockMovement struct {
	ID              string
	VoucherNumber   string
	ProductID       string
	WarehouseID     string
	Shelf           ShelfRef
	Type            string          // IN | OUT
	TransactionType string          // STANDARD | TRANSFER | PRODUCTION
	Quantity        decimal.Decimal // siempre > 0; el signo lo da Type
	Date            time.Time
	Counterparty    string // texto libre (proveedor, cliente, responsable...)
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SignedQuantity devuelve la cantidad con signo: positiva para IN, negativa para OUT.
// Es la única regla de signo del sistema; el ledger y los reportes la comparten.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Location devuelve la ubicación de stock afectada por el movimiento.
func (m *StockMovement) Location() StockLocation {
	return StockLocation{ProductID: m.ProductID, WarehouseID: m.WarehouseID, Shelf: m.Shelf}
}
