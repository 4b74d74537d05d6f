package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// VoucherLineRequest línea de comprobante estándar o de producción.
type VoucherLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	ShelfID   string          `json:"shelf_id,omitempty"`
}

// StandardVoucherRequest cuerpo de POST /stock-in y /stock-out.
type StandardVoucherRequest struct {
	WarehouseID  string               `json:"warehouse_id" validate:"required"`
	Counterparty string               `json:"counterparty"`
	Date         string               `json:"date" validate:"required"` // YYYY-MM-DD o RFC 3339
	Notes        string               `json:"notes"`
	Lines        []VoucherLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// TransferLineRequest línea de traslado con estantería origen y destino opcionales.
type TransferLineRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	SourceShelfID string          `json:"source_shelf_id,omitempty"`
	DestShelfID   string          `json:"dest_shelf_id,omitempty"`
}

// TransferVoucherRequest cuerpo de POST /stock-transfer.
type TransferVoucherRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id" validate:"required"`
	DestWarehouseID   string                `json:"dest_warehouse_id" validate:"required"`
	Date              string                `json:"date" validate:"required"`
	Notes             string                `json:"notes"`
	Lines             []TransferLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ProductionVoucherRequest cuerpo de POST /production-voucher.
type ProductionVoucherRequest struct {
	SourceWarehouseID string               `json:"source_warehouse_id" validate:"required"`
	DestWarehouseID   string               `json:"dest_warehouse_id" validate:"required"`
	Date              string               `json:"date" validate:"required"`
	Notes             string               `json:"notes"`
	Consumed          []VoucherLineRequest `json:"consumed" validate:"required,min=1,dive"`
	Produced          []VoucherLineRequest `json:"produced" validate:"required,min=1,dive"`
}

// EditVoucherRequest cuerpo de PUT /voucher/{number}: discriminador de tipo +
// contenido nuevo completo (reemplazo idempotente bajo el mismo número).
type EditVoucherRequest struct {
	Kind       string                    `json:"kind" validate:"required,oneof=stock_in stock_out transfer production"`
	Standard   *StandardVoucherRequest   `json:"standard,omitempty"`
	Transfer   *TransferVoucherRequest   `json:"transfer,omitempty"`
	Production *ProductionVoucherRequest `json:"production,omitempty"`
}

// VoucherResponse respuesta de las operaciones de registro.
type VoucherResponse struct {
	VoucherNumber string `json:"voucher_number"`
}

// MovementResponse un movimiento dentro de GET /voucher/{number}.
type MovementResponse struct {
	ID              string          `json:"id"`
	VoucherNumber   string          `json:"voucher_number"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	ShelfID         string          `json:"shelf_id,omitempty"`
	Type            string          `json:"type"`
	TransactionType string          `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Date            string          `json:"date"`
	Counterparty    string          `json:"counterparty,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}
