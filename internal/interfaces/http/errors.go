package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/dto"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
)

// writeDomainError traduce la taxonomía de errores del motor a HTTP.
// La política de propagación es todo-o-nada: cuando llega aquí un error de una
// operación mutadora, la transacción ya se revirtió entera.
func writeDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Details: fiber.Map{
				"product_id":   insufficient.ProductID,
				"warehouse_id": insufficient.WarehouseID,
				"shelf_id":     insufficient.ShelfID,
				"requested":    insufficient.Requested,
				"available":    insufficient.Available,
			},
		})
	}
	var dependent *domain.DependentStockError
	if errors.As(err, &dependent) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DEPENDENT_STOCK",
			Message: dependent.Error(),
			Details: fiber.Map{
				"voucher_number": dependent.VoucherNumber,
				"product_id":     dependent.ProductID,
				"warehouse_id":   dependent.WarehouseID,
				"shelf_id":       dependent.ShelfID,
				"requested":      dependent.Requested,
				"available":      dependent.Available,
			},
		})
	}
	var seqConflict *domain.SequenceConflictError
	if errors.As(err, &seqConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "SEQUENCE_CONFLICT",
			Message: seqConflict.Error(),
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: err.Error(),
		})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: err.Error(),
	})
}

func writeBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}
