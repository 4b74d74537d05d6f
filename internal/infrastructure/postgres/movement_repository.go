package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, voucher_number, product_id, warehouse_id, shelf_id,
	type, transaction_type, quantity, date, counterparty, notes, created_at, updated_at`

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.VoucherNumber, m.ProductID, m.WarehouseID, m.Shelf.Key(),
		m.Type, m.TransactionType, m.Quantity, m.Date, m.Counterparty, m.Notes,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			// CHECK quantity > 0: la capa de aplicación ya valida, la base es la última línea.
			return domain.ErrInvalidInput
		}
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByVoucher devuelve los movimientos del comprobante en orden de creación.
func (r *MovementRepo) ListByVoucher(ctx context.Context, voucherNumber string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE voucher_number = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, voucherNumber)
	if err != nil {
		return nil, fmt.Errorf("list by voucher: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Delete elimina una fila del log (reversa de comprobantes).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// VoucherExists indica si algún movimiento usa ese número de comprobante.
func (r *MovementRepo) VoucherExists(ctx context.Context, voucherNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_movements WHERE voucher_number = $1)`,
		voucherNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("voucher exists: %w", err)
	}
	return exists, nil
}

// ListForReplay devuelve los movimientos del filtro ordenados por fecha,
// con desempate por created_at y luego id. Solo lo usa el motor de reportes.
func (r *MovementRepo) ListForReplay(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	where, args := filterClauses(f, 1)
	query += where + ` ORDER BY date, created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list for replay: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SumSignedBefore suma con signo los movimientos anteriores al corte (saldo de apertura).
func (r *MovementRepo) SumSignedBefore(ctx context.Context, f repository.MovementFilter, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE 1=1`
	where, args := filterClauses(f, 1)
	query += where + fmt.Sprintf(" AND date < $%d", len(args)+1)
	args = append(args, before)

	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum signed before: %w", err)
	}
	return sum, nil
}

// SnapshotAt reconstruye la cantidad por ubicación a la fecha dada sumando el log con signo.
func (r *MovementRepo) SnapshotAt(ctx context.Context, asOf time.Time, f repository.MovementFilter) ([]repository.SnapshotRow, error) {
	query := `
		SELECT product_id, warehouse_id, shelf_id,
		       SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END) AS quantity
		FROM stock_movements WHERE 1=1`
	where, args := filterClauses(f, 1)
	query += where + fmt.Sprintf(" AND date <= $%d", len(args)+1)
	args = append(args, asOf)
	query += `
		GROUP BY product_id, warehouse_id, shelf_id
		ORDER BY product_id, warehouse_id, shelf_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot at: %w", err)
	}
	defer rows.Close()

	var result []repository.SnapshotRow
	for rows.Next() {
		var productID, warehouseID, shelfKey string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &warehouseID, &shelfKey, &qty); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		result = append(result, repository.SnapshotRow{
			Location: entity.StockLocation{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Shelf:       entity.ShelfRefFromKey(shelfKey),
			},
			Quantity: qty,
		})
	}
	return result, rows.Err()
}

// filterClauses genera las condiciones del filtro con placeholders desde pos.
func filterClauses(f repository.MovementFilter, pos int) (string, []any) {
	var where string
	var args []any
	if f.ProductID != "" {
		where += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.WarehouseID != "" {
		where += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.Shelf != nil {
		where += fmt.Sprintf(" AND shelf_id = $%d", pos)
		args = append(args, f.Shelf.Key())
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return where, args
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMovements(rows rowsScanner) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var shelfKey string
		if err := rows.Scan(&m.ID, &m.VoucherNumber, &m.ProductID, &m.WarehouseID, &shelfKey,
			&m.Type, &m.TransactionType, &m.Quantity, &m.Date, &m.Counterparty, &m.Notes,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Shelf = entity.ShelfRefFromKey(shelfKey)
		list = append(list, &m)
	}
	return list, rows.Err()
}
