package http

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/dto"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// VoucherHandler maneja las peticiones HTTP de comprobantes.
type VoucherHandler struct {
	processor *voucher.Processor
	query     *voucher.Query
	validate  *validator.Validate
}

// NewVoucherHandler construye el handler.
func NewVoucherHandler(processor *voucher.Processor, query *voucher.Query, validate *validator.Validate) *VoucherHandler {
	return &VoucherHandler{processor: processor, query: query, validate: validate}
}

// RecordStockIn godoc
// @Summary      Registrar comprobante de entrada
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StandardVoucherRequest  true  "cabecera + líneas"
// @Success      201   {object}  dto.VoucherResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *VoucherHandler) RecordStockIn(c *fiber.Ctx) error {
	return h.recordStandard(c, entity.KindStockIn)
}

// RecordStockOut godoc
// @Summary      Registrar comprobante de salida
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StandardVoucherRequest  true  "cabecera + líneas"
// @Success      201   {object}  dto.VoucherResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *VoucherHandler) RecordStockOut(c *fiber.Ctx) error {
	return h.recordStandard(c, entity.KindStockOut)
}

func (h *VoucherHandler) recordStandard(c *fiber.Ctx, kind entity.VoucherKind) error {
	var in dto.StandardVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return writeBadRequest(c, err.Error())
	}
	input, err := mapStandardInput(in)
	if err != nil {
		return writeBadRequest(c, "fecha inválida (usar YYYY-MM-DD o RFC 3339)")
	}
	number, err := h.processor.RecordStandard(c.Context(), kind, input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VoucherResponse{VoucherNumber: number})
}

// RecordTransfer godoc
// @Summary      Registrar traslado entre bodegas
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferVoucherRequest  true  "cabecera + líneas con estantería origen/destino"
// @Success      201   {object}  dto.VoucherResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-transfer [post]
func (h *VoucherHandler) RecordTransfer(c *fiber.Ctx) error {
	var in dto.TransferVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return writeBadRequest(c, err.Error())
	}
	input, err := mapTransferInput(in)
	if err != nil {
		return writeBadRequest(c, "fecha inválida (usar YYYY-MM-DD o RFC 3339)")
	}
	number, err := h.processor.RecordTransfer(c.Context(), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VoucherResponse{VoucherNumber: number})
}

// RecordProduction godoc
// @Summary      Registrar comprobante de producción
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionVoucherRequest  true  "cabecera + consumos + productos"
// @Success      201   {object}  dto.VoucherResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-voucher [post]
func (h *VoucherHandler) RecordProduction(c *fiber.Ctx) error {
	var in dto.ProductionVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return writeBadRequest(c, err.Error())
	}
	input, err := mapProductionInput(in)
	if err != nil {
		return writeBadRequest(c, "fecha inválida (usar YYYY-MM-DD o RFC 3339)")
	}
	number, err := h.processor.RecordProduction(c.Context(), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VoucherResponse{VoucherNumber: number})
}

// Edit godoc
// @Summary      Reemplazar el contenido de un comprobante (mismo número)
// @Description  Reversa + reaplicación dentro de una sola transacción; si la
//
//	reaplicación falla, el comprobante original queda intacto.
//
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        number  path  string  true  "número de comprobante"
// @Param        body    body  dto.EditVoucherRequest  true  "discriminador kind + contenido nuevo"
// @Success      200   {object}  dto.VoucherResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/voucher/{number} [put]
func (h *VoucherHandler) Edit(c *fiber.Ctx) error {
	number := c.Params("number")
	var in dto.EditVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadRequest(c, "cuerpo inválido")
	}
	if err := h.validate.Struct(in); err != nil {
		return writeBadRequest(c, err.Error())
	}
	input, err := mapEditInput(in)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := h.processor.EditVoucher(c.Context(), number, input); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.VoucherResponse{VoucherNumber: number})
}

// Delete godoc
// @Summary      Eliminar un comprobante (reversa completa)
// @Tags         vouchers
// @Produce      json
// @Param        number  path  string  true  "número de comprobante"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/voucher/{number} [delete]
func (h *VoucherHandler) Delete(c *fiber.Ctx) error {
	number := c.Params("number")
	if err := h.processor.Delete(c.Context(), number); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comprobante eliminado", "voucher_number": number})
}

// Get godoc
// @Summary      Consultar los movimientos de un comprobante
// @Tags         vouchers
// @Produce      json
// @Param        number  path  string  true  "número de comprobante"
// @Success      200   {array}   dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/voucher/{number} [get]
func (h *VoucherHandler) Get(c *fiber.Ctx) error {
	movements, err := h.query.GetVoucher(c.Context(), c.Params("number"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:              m.ID,
			VoucherNumber:   m.VoucherNumber,
			ProductID:       m.ProductID,
			WarehouseID:     m.WarehouseID,
			ShelfID:         m.Shelf.Key(),
			Type:            m.Type,
			TransactionType: m.TransactionType,
			Quantity:        m.Quantity,
			Date:            m.Date.Format(time.RFC3339),
			Counterparty:    m.Counterparty,
			Notes:           m.Notes,
		})
	}
	return c.JSON(out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo request -> entrada del procesador
// ──────────────────────────────────────────────────────────────────────────────

func mapStandardInput(in dto.StandardVoucherRequest) (voucher.StandardInput, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return voucher.StandardInput{}, err
	}
	lines := make([]voucher.StandardLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, voucher.StandardLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Shelf:     shelfRef(l.ShelfID),
		})
	}
	return voucher.StandardInput{
		Header: voucher.StandardHeader{
			WarehouseID:  in.WarehouseID,
			Counterparty: in.Counterparty,
			Date:         date,
			Notes:        in.Notes,
		},
		Lines: lines,
	}, nil
}

func mapTransferInput(in dto.TransferVoucherRequest) (voucher.TransferInput, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return voucher.TransferInput{}, err
	}
	lines := make([]voucher.TransferLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, voucher.TransferLine{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			SourceShelf: shelfRef(l.SourceShelfID),
			DestShelf:   shelfRef(l.DestShelfID),
		})
	}
	return voucher.TransferInput{
		Header: voucher.TransferHeader{
			SourceWarehouseID: in.SourceWarehouseID,
			DestWarehouseID:   in.DestWarehouseID,
			Date:              date,
			Notes:             in.Notes,
		},
		Lines: lines,
	}, nil
}

func mapProductionInput(in dto.ProductionVoucherRequest) (voucher.ProductionInput, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return voucher.ProductionInput{}, err
	}
	mapLines := func(reqs []dto.VoucherLineRequest) []voucher.ProductionLine {
		lines := make([]voucher.ProductionLine, 0, len(reqs))
		for _, l := range reqs {
			lines = append(lines, voucher.ProductionLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Shelf:     shelfRef(l.ShelfID),
			})
		}
		return lines
	}
	return voucher.ProductionInput{
		Header: voucher.ProductionHeader{
			SourceWarehouseID: in.SourceWarehouseID,
			DestWarehouseID:   in.DestWarehouseID,
			Date:              date,
			Notes:             in.Notes,
		},
		Consumed: mapLines(in.Consumed),
		Produced: mapLines(in.Produced),
	}, nil
}

func mapEditInput(in dto.EditVoucherRequest) (voucher.EditInput, error) {
	kind, err := entity.ParseVoucherKind(in.Kind)
	if err != nil {
		return voucher.EditInput{}, err
	}
	out := voucher.EditInput{Kind: kind}
	switch kind {
	case entity.KindStockIn, entity.KindStockOut:
		if in.Standard == nil {
			return voucher.EditInput{}, errMissingContent(kind)
		}
		mapped, err := mapStandardInput(*in.Standard)
		if err != nil {
			return voucher.EditInput{}, err
		}
		out.Standard = &mapped
	case entity.KindTransfer:
		if in.Transfer == nil {
			return voucher.EditInput{}, errMissingContent(kind)
		}
		mapped, err := mapTransferInput(*in.Transfer)
		if err != nil {
			return voucher.EditInput{}, err
		}
		out.Transfer = &mapped
	case entity.KindProduction:
		if in.Production == nil {
			return voucher.EditInput{}, errMissingContent(kind)
		}
		mapped, err := mapProductionInput(*in.Production)
		if err != nil {
			return voucher.EditInput{}, err
		}
		out.Production = &mapped
	}
	return out, nil
}

func errMissingContent(kind entity.VoucherKind) error {
	return fmt.Errorf("contenido %q requerido en el cuerpo: %w", kind, domain.ErrInvalidInput)
}

func shelfRef(id string) entity.ShelfRef {
	if id == "" {
		return entity.WarehouseLevel()
	}
	return entity.ShelfLevel(id)
}

// parseDate acepta fecha simple o timestamp RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
