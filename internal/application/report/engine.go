package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Engine produce extractos y fotos de inventario reconstruyendo el log de
// movimientos. Solo lee: nunca toca el estado vivo del ledger y puede correr
// en paralelo con las mutaciones (le basta una lectura consistente).
type Engine struct {
	mov repository.MovementRepository
}

// NewEngine construye el motor de reportes sobre el repo del pool.
func NewEngine(mov repository.MovementRepository) *Engine {
	return &Engine{mov: mov}
}

// StatementQuery filtro del extracto: producto obligatorio, bodega y
// estantería opcionales, rango de fechas opcional.
type StatementQuery struct {
	ProductID   string
	WarehouseID string
	Shelf       *entity.ShelfRef
	From        *time.Time
	To          *time.Time
}

// StatementLine una fila del extracto con el saldo acumulado tras el movimiento.
type StatementLine struct {
	Date            time.Time
	VoucherNumber   string
	Type            string
	TransactionType string
	WarehouseID     string
	ShelfID         string
	SignedQuantity  decimal.Decimal
	RunningBalance  decimal.Decimal
	Counterparty    string
	Notes           string
}

// Statement extracto completo: saldo de apertura, filas y saldo de cierre.
type Statement struct {
	OpeningBalance decimal.Decimal
	Lines          []StatementLine
	ClosingBalance decimal.Decimal
}

// Statement calcula el saldo de apertura como la suma con signo de todos los
// movimientos estrictamente anteriores al rango y reproduce los del rango en
// orden cronológico acumulando el saldo, con la misma regla de signo que usa
// el ledger. Con rango abierto por la derecha, el saldo final cuadra con la
// cantidad viva de la ubicación (propiedad de conciliación).
func (e *Engine) Statement(ctx context.Context, q StatementQuery) (*Statement, error) {
	if q.ProductID == "" {
		return nil, fmt.Errorf("producto requerido para el extracto: %w", domain.ErrInvalidInput)
	}
	if q.Shelf != nil && q.WarehouseID == "" {
		return nil, fmt.Errorf("filtro por estantería requiere bodega: %w", domain.ErrInvalidInput)
	}
	filter := repository.MovementFilter{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Shelf:       q.Shelf,
	}

	opening := decimal.Zero
	if q.From != nil {
		var err error
		opening, err = e.mov.SumSignedBefore(ctx, filter, *q.From)
		if err != nil {
			return nil, err
		}
	}

	filter.From = q.From
	filter.To = q.To
	movements, err := e.mov.ListForReplay(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &Statement{OpeningBalance: opening, Lines: make([]StatementLine, 0, len(movements))}
	balance := opening
	for _, m := range movements {
		signed := m.SignedQuantity()
		balance = balance.Add(signed)
		result.Lines = append(result.Lines, StatementLine{
			Date:            m.Date,
			VoucherNumber:   m.VoucherNumber,
			Type:            m.Type,
			TransactionType: m.TransactionType,
			WarehouseID:     m.WarehouseID,
			ShelfID:         m.Shelf.Key(),
			SignedQuantity:  signed,
			RunningBalance:  balance,
			Counterparty:    m.Counterparty,
			Notes:           m.Notes,
		})
	}
	result.ClosingBalance = balance
	return result, nil
}

// SnapshotScope acota la foto de inventario; todo opcional.
type SnapshotScope struct {
	ProductID   string
	WarehouseID string
	Shelf       *entity.ShelfRef
}

// Snapshot reconstruye la cantidad por ubicación a la fecha dada reproduciendo
// el log hasta ese momento, sin tocar el estado vivo. Sirve para inventarios
// históricos.
func (e *Engine) Snapshot(ctx context.Context, asOf time.Time, scope SnapshotScope) ([]repository.SnapshotRow, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("fecha de corte requerida: %w", domain.ErrInvalidInput)
	}
	if scope.Shelf != nil && scope.WarehouseID == "" {
		return nil, fmt.Errorf("filtro por estantería requiere bodega: %w", domain.ErrInvalidInput)
	}
	filter := repository.MovementFilter{
		ProductID:   scope.ProductID,
		WarehouseID: scope.WarehouseID,
		Shelf:       scope.Shelf,
	}
	return e.mov.SnapshotAt(ctx, asOf, filter)
}
