package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/dto"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/report"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// ReportHandler maneja los reportes de solo lectura del ledger.
type ReportHandler struct {
	engine *report.Engine
}

// NewReportHandler construye el handler.
func NewReportHandler(engine *report.Engine) *ReportHandler {
	return &ReportHandler{engine: engine}
}

// Statement godoc
// @Summary      Extracto de movimientos de un producto con saldo acumulado
// @Tags         reports
// @Produce      json
// @Param        product_id    query  string  true   "producto (obligatorio)"
// @Param        warehouse_id  query  string  false  "bodega"
// @Param        shelf_id      query  string  false  "estantería (requiere bodega)"
// @Param        from          query  string  false  "YYYY-MM-DD"
// @Param        to            query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.StatementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger-statement [get]
func (h *ReportHandler) Statement(c *fiber.Ctx) error {
	q := report.StatementQuery{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
	}
	if shelfID := c.Query("shelf_id"); shelfID != "" {
		shelf := entity.ShelfLevel(shelfID)
		q.Shelf = &shelf
	}
	var err error
	if q.From, err = optionalDate(c.Query("from")); err != nil {
		return writeBadRequest(c, "parámetro from inválido (usar YYYY-MM-DD)")
	}
	if q.To, err = optionalDate(c.Query("to")); err != nil {
		return writeBadRequest(c, "parámetro to inválido (usar YYYY-MM-DD)")
	}

	statement, err := h.engine.Statement(c.Context(), q)
	if err != nil {
		return writeDomainError(c, err)
	}

	out := dto.StatementResponse{
		OpeningBalance: statement.OpeningBalance,
		ClosingBalance: statement.ClosingBalance,
		Lines:          make([]dto.StatementLineResponse, 0, len(statement.Lines)),
	}
	for _, line := range statement.Lines {
		out.Lines = append(out.Lines, dto.StatementLineResponse{
			Date:            line.Date.Format("2006-01-02"),
			VoucherNumber:   line.VoucherNumber,
			Type:            line.Type,
			TransactionType: line.TransactionType,
			WarehouseID:     line.WarehouseID,
			ShelfID:         line.ShelfID,
			SignedQuantity:  line.SignedQuantity,
			RunningBalance:  line.RunningBalance,
			Counterparty:    line.Counterparty,
			Notes:           line.Notes,
		})
	}
	return c.JSON(out)
}

// Snapshot godoc
// @Summary      Foto de inventario a una fecha (reconstrucción histórica)
// @Tags         reports
// @Produce      json
// @Param        as_of         query  string  true   "YYYY-MM-DD"
// @Param        product_id    query  string  false  "producto"
// @Param        warehouse_id  query  string  false  "bodega"
// @Param        shelf_id      query  string  false  "estantería (requiere bodega)"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory-snapshot [get]
func (h *ReportHandler) Snapshot(c *fiber.Ctx) error {
	asOfRaw := c.Query("as_of")
	if asOfRaw == "" {
		return writeBadRequest(c, "parámetro as_of requerido")
	}
	asOf, err := parseDate(asOfRaw)
	if err != nil {
		return writeBadRequest(c, "parámetro as_of inválido (usar YYYY-MM-DD)")
	}

	scope := report.SnapshotScope{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
	}
	if shelfID := c.Query("shelf_id"); shelfID != "" {
		shelf := entity.ShelfLevel(shelfID)
		scope.Shelf = &shelf
	}

	rows, err := h.engine.Snapshot(c.Context(), asOf, scope)
	if err != nil {
		return writeDomainError(c, err)
	}

	out := dto.SnapshotResponse{
		AsOf:      asOf.Format("2006-01-02"),
		Locations: make([]dto.SnapshotRowResponse, 0, len(rows)),
	}
	for _, row := range rows {
		out.Locations = append(out.Locations, dto.SnapshotRowResponse{
			ProductID:   row.Location.ProductID,
			WarehouseID: row.Location.WarehouseID,
			ShelfID:     row.Location.Shelf.Key(),
			Quantity:    row.Quantity,
		})
	}
	return c.JSON(out)
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
