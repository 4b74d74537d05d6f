package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/report"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Processor    *voucher.Processor
	VoucherQuery *voucher.Query
	Reports      *report.Engine
	Sequences    *sequence.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := validator.New()
	api := app.Group("/api")

	// Comprobantes (único camino de escritura del ledger)
	voucherHandler := NewVoucherHandler(deps.Processor, deps.VoucherQuery, validate)
	api.Post("/stock-in", voucherHandler.RecordStockIn)
	api.Post("/stock-out", voucherHandler.RecordStockOut)
	api.Post("/stock-transfer", voucherHandler.RecordTransfer)
	api.Post("/production-voucher", voucherHandler.RecordProduction)
	api.Get("/voucher/:number", voucherHandler.Get)
	api.Put("/voucher/:number", voucherHandler.Edit)
	api.Delete("/voucher/:number", voucherHandler.Delete)

	// Secuencias (consulta sin consumir)
	sequenceHandler := NewSequenceHandler(deps.Sequences)
	api.Get("/next-voucher-number", sequenceHandler.NextVoucherNumber)
	api.Get("/next-sku", sequenceHandler.NextSKU)
	api.Get("/next-account-code", sequenceHandler.NextAccountCode)

	// Reportes de solo lectura
	reportHandler := NewReportHandler(deps.Reports)
	api.Get("/ledger-statement", reportHandler.Statement)
	api.Get("/inventory-snapshot", reportHandler.Snapshot)
}
