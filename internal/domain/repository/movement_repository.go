package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// MovementFilter acota consultas sobre el log de movimientos.
// ProductID vacío = todos los productos; WarehouseID vacío = todas las bodegas;
// Shelf nil = sin filtrar por estantería (nivel bodega y estanterías incluidos).
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Shelf       *entity.ShelfRef
	From        *time.Time
	To          *time.Time
}

// SnapshotRow es la cantidad reconstruida de una ubicación a una fecha dada.
type SnapshotRow struct {
	Location entity.StockLocation
	Quantity decimal.Decimal
}

// MovementRepository es el log append-only de movimientos de stock.
// Las filas nunca se actualizan; solo se insertan, y se borran en bloque
// cuando se revierte o reemplaza un comprobante.
type MovementRepository interface {
	// Create persiste un movimiento (asigna ID si viene vacío).
	Create(ctx context.Context, m *entity.StockMovement) error

	// ListByVoucher devuelve los movimientos del comprobante en orden de creación.
	ListByVoucher(ctx context.Context, voucherNumber string) ([]*entity.StockMovement, error)

	// Delete elimina una fila del log (solo lo usa la reversa de comprobantes).
	Delete(ctx context.Context, id string) error

	// VoucherExists indica si algún movimiento usa ese número de comprobante.
	VoucherExists(ctx context.Context, voucherNumber string) (bool, error)

	// ListForReplay devuelve los movimientos que cumplen el filtro ordenados por
	// fecha, con desempate por created_at y luego id. Solo lo usa el motor de reportes.
	ListForReplay(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)

	// SumSignedBefore devuelve la suma con signo de los movimientos que cumplen el
	// filtro con fecha estrictamente anterior al corte (saldo de apertura).
	SumSignedBefore(ctx context.Context, f MovementFilter, before time.Time) (decimal.Decimal, error)

	// SnapshotAt reconstruye la cantidad por ubicación a la fecha dada sumando el
	// log con signo, sin tocar el estado vivo del ledger.
	SnapshotAt(ctx context.Context, asOf time.Time, f MovementFilter) ([]SnapshotRow, error)
}
