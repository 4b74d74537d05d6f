package voucher

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Processor orquesta la creación de los cuatro tipos de comprobante. Es el
// único escritor de estado de negocio nuevo: asigna un número de comprobante
// por operación y, por cada línea, un par ajuste-de-ledger + movimiento, todo
// dentro de una transacción. Ante el primer fallo la tx se revierte y el
// número no queda consumido.
type Processor struct {
	tx    TxRunner
	specs sequence.SpecResolver
}

// NewProcessor construye el procesador de comprobantes.
func NewProcessor(tx TxRunner, specs sequence.SpecResolver) *Processor {
	return &Processor{tx: tx, specs: specs}
}

// StandardHeader cabecera de un comprobante de entrada o salida.
type StandardHeader struct {
	WarehouseID  string
	Counterparty string
	Date         time.Time
	Notes        string
}

// StandardLine línea de un comprobante estándar.
type StandardLine struct {
	ProductID string
	Quantity  decimal.Decimal
	Shelf     entity.ShelfRef
}

// StandardInput comprobante estándar completo (cabecera + líneas homogéneas en dirección).
type StandardInput struct {
	Header StandardHeader
	Lines  []StandardLine
}

// TransferHeader cabecera de un traslado entre bodegas.
type TransferHeader struct {
	SourceWarehouseID string
	DestWarehouseID   string
	Date              time.Time
	Notes             string
}

// TransferLine línea de traslado: por producto, exactamente un OUT en origen y un IN en destino.
type TransferLine struct {
	ProductID   string
	Quantity    decimal.Decimal
	SourceShelf entity.ShelfRef
	DestShelf   entity.ShelfRef
}

// TransferInput traslado completo.
type TransferInput struct {
	Header TransferHeader
	Lines  []TransferLine
}

// ProductionHeader cabecera de un comprobante de producción.
type ProductionHeader struct {
	SourceWarehouseID string // bodega de consumo
	DestWarehouseID   string // bodega de producto terminado
	Date              time.Time
	Notes             string
}

// ProductionLine línea de consumo o de producto terminado.
type ProductionLine struct {
	ProductID string
	Quantity  decimal.Decimal
	Shelf     entity.ShelfRef
}

// ProductionInput producción completa: consumos (OUT en origen) y productos (IN en destino),
// sin emparejamiento 1:1 entre ambos lados.
type ProductionInput struct {
	Header   ProductionHeader
	Consumed []ProductionLine
	Produced []ProductionLine
}

// EditInput contenido nuevo de un comprobante existente; Kind discrimina cuál
// de los tres campos aplica.
type EditInput struct {
	Kind       entity.VoucherKind
	Standard   *StandardInput
	Transfer   *TransferInput
	Production *ProductionInput
}

// RecordStandard registra un comprobante de entrada (stock_in) o salida (stock_out).
// Devuelve el número asignado. Si alguna línea de salida dejaría una ubicación
// en negativo, la operación entera falla con *domain.InsufficientStockError y
// no queda rastro: ni movimientos, ni ajustes, ni número consumido.
func (p *Processor) RecordStandard(ctx context.Context, kind entity.VoucherKind, in StandardInput) (string, error) {
	if err := validateStandard(kind, in); err != nil {
		return "", err
	}
	var number string
	err := p.tx.Run(ctx, func(mov repository.MovementRepository, stock repository.StockRepository, seq repository.SequenceRepository) error {
		n, err := sequence.Allocate(ctx, seq, p.specs, string(kind))
		if err != nil {
			return err
		}
		number = n
		return applyStandard(ctx, mov, stock, number, kind, in)
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// RecordTransfer registra un traslado: por línea decrementa la ubicación origen
// e incrementa la destino, con un movimiento OUT y uno IN etiquetados TRANSFER
// bajo el mismo número y fecha.
func (p *Processor) RecordTransfer(ctx context.Context, in TransferInput) (string, error) {
	if err := validateTransfer(in); err != nil {
		return "", err
	}
	var number string
	err := p.tx.Run(ctx, func(mov repository.MovementRepository, stock repository.StockRepository, seq repository.SequenceRepository) error {
		n, err := sequence.Allocate(ctx, seq, p.specs, string(entity.KindTransfer))
		if err != nil {
			return err
		}
		number = n
		return applyTransfer(ctx, mov, stock, number, in)
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// RecordProduction registra una producción: decrementa cada consumo en la
// bodega origen (OUT/PRODUCTION) e incrementa cada producto en la destino
// (IN/PRODUCTION), todo en una sola operación atómica.
func (p *Processor) RecordProduction(ctx context.Context, in ProductionInput) (string, error) {
	if err := validateProduction(in); err != nil {
		return "", err
	}
	var number string
	err := p.tx.Run(ctx, func(mov repository.MovementRepository, stock repository.StockRepository, seq repository.SequenceRepository) error {
		n, err := sequence.Allocate(ctx, seq, p.specs, string(entity.KindProduction))
		if err != nil {
			return err
		}
		number = n
		return applyProduction(ctx, mov, stock, number, in)
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// EditVoucher reemplaza el contenido completo de un comprobante manteniendo su
// número: reversa + reaplicación dentro de la misma transacción. Si la
// reaplicación falla, la reversa también se revierte y el comprobante original
// queda intacto; el estado intermedio "borrado" nunca es observable.
func (p *Processor) EditVoucher(ctx context.Context, voucherNumber string, in EditInput) error {
	if voucherNumber == "" {
		return fmt.Errorf("número de comprobante vacío: %w", domain.ErrInvalidInput)
	}
	if err := validateEdit(in); err != nil {
		return err
	}
	return p.tx.Run(ctx, func(mov repository.MovementRepository, stock repository.StockRepository, _ repository.SequenceRepository) error {
		if err := reverseVoucher(ctx, mov, stock, voucherNumber); err != nil {
			return err
		}
		switch in.Kind {
		case entity.KindStockIn, entity.KindStockOut:
			return applyStandard(ctx, mov, stock, voucherNumber, in.Kind, *in.Standard)
		case entity.KindTransfer:
			return applyTransfer(ctx, mov, stock, voucherNumber, *in.Transfer)
		default:
			return applyProduction(ctx, mov, stock, voucherNumber, *in.Production)
		}
	})
}

// Delete elimina un comprobante: reversa sin fase de reaplicación.
// Falla con *domain.DependentStockError si otro comprobante posterior ya
// consumió el stock que habría que retirar; en ese caso nada cambia.
func (p *Processor) Delete(ctx context.Context, voucherNumber string) error {
	if voucherNumber == "" {
		return fmt.Errorf("número de comprobante vacío: %w", domain.ErrInvalidInput)
	}
	return p.tx.Run(ctx, func(mov repository.MovementRepository, stock repository.StockRepository, _ repository.SequenceRepository) error {
		return reverseVoucher(ctx, mov, stock, voucherNumber)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de líneas (compartida por registro y por la fase dos de edición)
// ──────────────────────────────────────────────────────────────────────────────

func applyStandard(ctx context.Context, mov repository.MovementRepository, stock repository.StockRepository,
	number string, kind entity.VoucherKind, in StandardInput) error {

	now := time.Now().UTC()
	movType := kind.MovementType()
	for _, line := range in.Lines {
		loc := entity.StockLocation{ProductID: line.ProductID, WarehouseID: in.Header.WarehouseID, Shelf: line.Shelf}
		delta := line.Quantity
		if movType == entity.MovementTypeOUT {
			delta = delta.Neg()
		}
		if err := stock.Adjust(ctx, loc, delta); err != nil {
			return err
		}
		m := &entity.StockMovement{
			VoucherNumber:   number,
			ProductID:       line.ProductID,
			WarehouseID:     in.Header.WarehouseID,
			Shelf:           line.Shelf,
			Type:            movType,
			TransactionType: entity.TransactionTypeStandard,
			Quantity:        line.Quantity,
			Date:            in.Header.Date,
			Counterparty:    in.Header.Counterparty,
			Notes:           in.Header.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := mov.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func applyTransfer(ctx context.Context, mov repository.MovementRepository, stock repository.StockRepository,
	number string, in TransferInput) error {

	now := time.Now().UTC()
	for _, line := range in.Lines {
		source := entity.StockLocation{ProductID: line.ProductID, WarehouseID: in.Header.SourceWarehouseID, Shelf: line.SourceShelf}
		dest := entity.StockLocation{ProductID: line.ProductID, WarehouseID: in.Header.DestWarehouseID, Shelf: line.DestShelf}

		if err := stock.Adjust(ctx, source, line.Quantity.Neg()); err != nil {
			return err
		}
		if err := stock.Adjust(ctx, dest, line.Quantity); err != nil {
			return err
		}
		out := &entity.StockMovement{
			VoucherNumber:   number,
			ProductID:       line.ProductID,
			WarehouseID:     in.Header.SourceWarehouseID,
			Shelf:           line.SourceShelf,
			Type:            entity.MovementTypeOUT,
			TransactionType: entity.TransactionTypeTransfer,
			Quantity:        line.Quantity,
			Date:            in.Header.Date,
			Notes:           in.Header.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := mov.Create(ctx, out); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			VoucherNumber:   number,
			ProductID:       line.ProductID,
			WarehouseID:     in.Header.DestWarehouseID,
			Shelf:           line.DestShelf,
			Type:            entity.MovementTypeIN,
			TransactionType: entity.TransactionTypeTransfer,
			Quantity:        line.Quantity,
			Date:            in.Header.Date,
			Notes:           in.Header.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := mov.Create(ctx, inMov); err != nil {
			return err
		}
	}
	return nil
}

func applyProduction(ctx context.Context, mov repository.MovementRepository, stock repository.StockRepository,
	number string, in ProductionInput) error {

	now := time.Now().UTC()
	for _, line := range in.Consumed {
		loc := entity.StockLocation{ProductID: line.ProductID, WarehouseID: in.Header.SourceWarehouseID, Shelf: line.Shelf}
		if err := stock.Adjust(ctx, loc, line.Quantity.Neg()); err != nil {
			return err
		}
		m := &entity.StockMovement{
			VoucherNumber:   number,
			ProductID:       line.ProductID,
			WarehouseID:     in.Header.SourceWarehouseID,
			Shelf:           line.Shelf,
			Type:            entity.MovementTypeOUT,
			TransactionType: entity.TransactionTypeProduction,
			Quantity:        line.Quantity,
			Date:            in.Header.Date,
			Notes:           in.Header.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := mov.Create(ctx, m); err != nil {
			return err
		}
	}
	for _, line := range in.Produced {
		loc := entity.StockLocation{ProductID: line.ProductID, WarehouseID: in.Header.DestWarehouseID, Shelf: line.Shelf}
		if err := stock.Adjust(ctx, loc, line.Quantity); err != nil {
			return err
		}
		m := &entity.StockMovement{
			VoucherNumber:   number,
			ProductID:       line.ProductID,
			WarehouseID:     in.Header.DestWarehouseID,
			Shelf:           line.Shelf,
			Type:            entity.MovementTypeIN,
			TransactionType: entity.TransactionTypeProduction,
			Quantity:        line.Quantity,
			Date:            in.Header.Date,
			Notes:           in.Header.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := mov.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func validateStandard(kind entity.VoucherKind, in StandardInput) error {
	if !kind.IsStandard() {
		return fmt.Errorf("tipo de comprobante %q no es estándar: %w", kind, domain.ErrInvalidInput)
	}
	if in.Header.WarehouseID == "" {
		return fmt.Errorf("bodega requerida: %w", domain.ErrInvalidInput)
	}
	if in.Header.Date.IsZero() {
		return fmt.Errorf("fecha requerida: %w", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("el comprobante necesita al menos una línea: %w", domain.ErrInvalidInput)
	}
	for _, line := range in.Lines {
		if err := validateLine(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func validateTransfer(in TransferInput) error {
	if in.Header.SourceWarehouseID == "" || in.Header.DestWarehouseID == "" {
		return fmt.Errorf("bodegas origen y destino requeridas: %w", domain.ErrInvalidInput)
	}
	if in.Header.Date.IsZero() {
		return fmt.Errorf("fecha requerida: %w", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("el traslado necesita al menos una línea: %w", domain.ErrInvalidInput)
	}
	for _, line := range in.Lines {
		if err := validateLine(line.ProductID, line.Quantity); err != nil {
			return err
		}
		// Misma bodega es válido solo si cambian las estanterías.
		if in.Header.SourceWarehouseID == in.Header.DestWarehouseID && line.SourceShelf == line.DestShelf {
			return fmt.Errorf("origen y destino idénticos para el producto %s: %w", line.ProductID, domain.ErrInvalidInput)
		}
	}
	return nil
}

func validateProduction(in ProductionInput) error {
	if in.Header.SourceWarehouseID == "" || in.Header.DestWarehouseID == "" {
		return fmt.Errorf("bodegas de consumo y destino requeridas: %w", domain.ErrInvalidInput)
	}
	if in.Header.Date.IsZero() {
		return fmt.Errorf("fecha requerida: %w", domain.ErrInvalidInput)
	}
	if len(in.Consumed) == 0 || len(in.Produced) == 0 {
		return fmt.Errorf("la producción necesita consumos y productos: %w", domain.ErrInvalidInput)
	}
	for _, line := range append(append([]ProductionLine{}, in.Consumed...), in.Produced...) {
		if err := validateLine(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func validateEdit(in EditInput) error {
	switch in.Kind {
	case entity.KindStockIn, entity.KindStockOut:
		if in.Standard == nil {
			return fmt.Errorf("contenido estándar requerido: %w", domain.ErrInvalidInput)
		}
		return validateStandard(in.Kind, *in.Standard)
	case entity.KindTransfer:
		if in.Transfer == nil {
			return fmt.Errorf("contenido de traslado requerido: %w", domain.ErrInvalidInput)
		}
		return validateTransfer(*in.Transfer)
	case entity.KindProduction:
		if in.Production == nil {
			return fmt.Errorf("contenido de producción requerido: %w", domain.ErrInvalidInput)
		}
		return validateProduction(*in.Production)
	default:
		return fmt.Errorf("tipo de comprobante %q: %w", in.Kind, domain.ErrInvalidInput)
	}
}

func validateLine(productID string, quantity decimal.Decimal) error {
	if productID == "" {
		return fmt.Errorf("producto requerido en la línea: %w", domain.ErrInvalidInput)
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("cantidad no positiva para el producto %s: %w", productID, domain.ErrInvalidInput)
	}
	return nil
}
