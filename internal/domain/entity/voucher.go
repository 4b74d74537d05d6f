package entity

import "github.com/hssndrms/stokyonetimi-sub000/internal/domain"

// VoucherKind discrimina los cuatro tipos de comprobante.
type VoucherKind string

const (
	KindStockIn    VoucherKind = "stock_in"
	KindStockOut   VoucherKind = "stock_out"
	KindTransfer   VoucherKind = "transfer"
	KindProduction VoucherKind = "production"
)

// ParseVoucherKind valida el discriminador recibido por HTTP.
func ParseVoucherKind(s string) (VoucherKind, error) {
	switch VoucherKind(s) {
	case KindStockIn, KindStockOut, KindTransfer, KindProduction:
		return VoucherKind(s), nil
	}
	return "", domain.ErrInvalidInput
}

// MovementType devuelve la dirección de los movimientos de un comprobante estándar.
// Solo tiene sentido para stock_in y stock_out.
func (k VoucherKind) MovementType() string {
	if k == KindStockOut {
		return MovementTypeOUT
	}
	return MovementTypeIN
}

// TransactionType devuelve el transaction_type con que se etiquetan los movimientos.
func (k VoucherKind) TransactionType() string {
	switch k {
	case KindTransfer:
		return TransactionTypeTransfer
	case KindProduction:
		return TransactionTypeProduction
	default:
		return TransactionTypeStandard
	}
}

// IsStandard indica si el comprobante es homogéneo en dirección (stock_in / stock_out).
func (k VoucherKind) IsStandard() bool {
	return k == KindStockIn || k == KindStockOut
}
