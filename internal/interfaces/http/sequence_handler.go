package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/dto"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// SequenceHandler expone la consulta del próximo identificador para el
// prellenado de formularios. El número definitivo lo asigna la transacción que
// registra el comprobante; estos endpoints no consumen valores.
type SequenceHandler struct {
	svc *sequence.Service
}

// NewSequenceHandler construye el handler.
func NewSequenceHandler(svc *sequence.Service) *SequenceHandler {
	return &SequenceHandler{svc: svc}
}

// NextVoucherNumber godoc
// @Summary      Próximo número de comprobante del tipo dado
// @Tags         sequences
// @Produce      json
// @Param        type  query  string  true  "stock_in | stock_out | transfer | production"
// @Success      200  {object}  dto.NextNumberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/next-voucher-number [get]
func (h *SequenceHandler) NextVoucherNumber(c *fiber.Ctx) error {
	kind, err := entity.ParseVoucherKind(c.Query("type"))
	if err != nil {
		return writeBadRequest(c, "parámetro type inválido (stock_in | stock_out | transfer | production)")
	}
	number, err := h.svc.Peek(c.Context(), string(kind))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{Number: number})
}

// NextSKU godoc
// @Summary      Próximo SKU del grupo de producto dado
// @Tags         sequences
// @Produce      json
// @Param        group_id  query  string  true  "grupo de producto"
// @Success      200  {object}  dto.NextNumberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/next-sku [get]
func (h *SequenceHandler) NextSKU(c *fiber.Ctx) error {
	groupID := c.Query("group_id")
	if groupID == "" {
		return writeBadRequest(c, "parámetro group_id requerido")
	}
	number, err := h.svc.Peek(c.Context(), sequence.SKUKind(groupID))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{Number: number})
}

// NextAccountCode godoc
// @Summary      Próximo código de cuenta del tipo dado
// @Tags         sequences
// @Produce      json
// @Param        type  query  string  true  "tipo de cuenta"
// @Success      200  {object}  dto.NextNumberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/next-account-code [get]
func (h *SequenceHandler) NextAccountCode(c *fiber.Ctx) error {
	accountType := c.Query("type")
	if accountType == "" {
		return writeBadRequest(c, "parámetro type requerido")
	}
	number, err := h.svc.Peek(c.Context(), sequence.AccountKind(accountType))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{Number: number})
}
