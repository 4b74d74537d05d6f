package dto

import "github.com/shopspring/decimal"

// StatementLineResponse una fila del extracto con saldo acumulado.
type StatementLineResponse struct {
	Date            string          `json:"date"`
	VoucherNumber   string          `json:"voucher_number"`
	Type            string          `json:"type"`
	TransactionType string          `json:"transaction_type"`
	WarehouseID     string          `json:"warehouse_id"`
	ShelfID         string          `json:"shelf_id,omitempty"`
	SignedQuantity  decimal.Decimal `json:"signed_quantity"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	Counterparty    string          `json:"counterparty,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// StatementResponse respuesta de GET /ledger-statement.
type StatementResponse struct {
	OpeningBalance decimal.Decimal         `json:"opening_balance"`
	Lines          []StatementLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal         `json:"closing_balance"`
}

// SnapshotRowResponse cantidad reconstruida de una ubicación a la fecha de corte.
type SnapshotRowResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	ShelfID     string          `json:"shelf_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// SnapshotResponse respuesta de GET /inventory-snapshot.
type SnapshotResponse struct {
	AsOf      string                `json:"as_of"`
	Locations []SnapshotRowResponse `json:"locations"`
}

// NextNumberResponse respuesta de los endpoints GET /next-*.
type NextNumberResponse struct {
	Number string `json:"number"`
}
