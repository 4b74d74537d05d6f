package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/report"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/infrastructure/memory"
	apihttp "github.com/hssndrms/stokyonetimi-sub000/internal/interfaces/http"
)

// newApp levanta la API completa sobre la infraestructura en memoria, con el
// mismo cableado que usa cmd/api en modo desarrollo.
func newApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	specs := sequence.StaticSpecs{
		"stock_in":   {Prefix: "SI", Length: 5},
		"stock_out":  {Prefix: "SO", Length: 5},
		"transfer":   {Prefix: "TR", Length: 5},
		"production": {Prefix: "PR", Length: 5},
	}
	movRepo := memory.NewMovementRepository(store)
	seqRepo := memory.NewSequenceRepository(store)

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		Processor:    voucher.NewProcessor(memory.NewTxRunner(store), specs),
		VoucherQuery: voucher.NewQuery(movRepo),
		Reports:      report.NewEngine(movRepo),
		Sequences:    sequence.NewService(seqRepo, specs),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func stockIn(t *testing.T, app *fiber.App, warehouseID, productID, quantity string) string {
	t.Helper()
	body := fmt.Sprintf(`{
		"warehouse_id": %q,
		"date": "2026-05-01",
		"lines": [{"product_id": %q, "quantity": %s}]
	}`, warehouseID, productID, quantity)
	status, out := doJSON(t, app, fiber.MethodPost, "/api/stock-in", body)
	require.Equal(t, fiber.StatusCreated, status)
	return out["voucher_number"].(string)
}

func TestPostStockIn(t *testing.T) {
	app, _ := newApp(t)
	number := stockIn(t, app, "W1", "P1", "10")
	assert.Equal(t, "SI00001", number)
}

func TestPostStockInCuerpoInvalido(t *testing.T) {
	app, _ := newApp(t)

	status, out := doJSON(t, app, fiber.MethodPost, "/api/stock-in", `{"warehouse_id": "W1"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])

	status, out = doJSON(t, app, fiber.MethodPost, "/api/stock-in", `{
		"warehouse_id": "W1", "date": "01/05/2026",
		"lines": [{"product_id": "P1", "quantity": 1}]
	}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestPostStockOutInsuficiente(t *testing.T) {
	app, _ := newApp(t)
	stockIn(t, app, "W1", "P1", "10")

	status, out := doJSON(t, app, fiber.MethodPost, "/api/stock-out", `{
		"warehouse_id": "W1",
		"date": "2026-05-02",
		"lines": [{"product_id": "P1", "quantity": 15}]
	}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out["code"])

	details, ok := out["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P1", details["product_id"])
	assert.Equal(t, "15", details["requested"])
	assert.Equal(t, "10", details["available"])
}

func TestPostStockTransfer(t *testing.T) {
	app, _ := newApp(t)
	stockIn(t, app, "W1", "P1", "6")

	status, out := doJSON(t, app, fiber.MethodPost, "/api/stock-transfer", `{
		"source_warehouse_id": "W1",
		"dest_warehouse_id": "W2",
		"date": "2026-05-02",
		"lines": [{"product_id": "P1", "quantity": 3}]
	}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "TR00001", out["voucher_number"])
}

func TestPostProductionVoucher(t *testing.T) {
	app, _ := newApp(t)
	stockIn(t, app, "W1", "MAT1", "8")

	status, out := doJSON(t, app, fiber.MethodPost, "/api/production-voucher", `{
		"source_warehouse_id": "W1",
		"dest_warehouse_id": "W2",
		"date": "2026-05-02",
		"consumed": [{"product_id": "MAT1", "quantity": 6}],
		"produced": [{"product_id": "TERM1", "quantity": 2}]
	}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "PR00001", out["voucher_number"])
}

func TestGetVoucher(t *testing.T) {
	app, _ := newApp(t)
	number := stockIn(t, app, "W1", "P1", "10")

	req := httptest.NewRequest(fiber.MethodGet, "/api/voucher/"+number, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var movements []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movements))
	require.Len(t, movements, 1)
	assert.Equal(t, number, movements[0]["voucher_number"])
	assert.Equal(t, "IN", movements[0]["type"])
	assert.Equal(t, "10", movements[0]["quantity"])
}

func TestGetVoucherInexistente(t *testing.T) {
	app, _ := newApp(t)
	status, out := doJSON(t, app, fiber.MethodGet, "/api/voucher/SI99999", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out["code"])
}

func TestPutVoucherReemplaza(t *testing.T) {
	app, store := newApp(t)
	number := stockIn(t, app, "W1", "P1", "10")

	status, out := doJSON(t, app, fiber.MethodPut, "/api/voucher/"+number, `{
		"kind": "stock_in",
		"standard": {
			"warehouse_id": "W1",
			"date": "2026-05-01",
			"lines": [{"product_id": "P1", "quantity": 4}]
		}
	}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, number, out["voucher_number"])

	movements, err := memory.NewMovementRepository(store).ListByVoucher(context.Background(), number)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "4", movements[0].Quantity.String())
}

func TestPutVoucherSinContenido(t *testing.T) {
	app, _ := newApp(t)
	number := stockIn(t, app, "W1", "P1", "10")

	status, out := doJSON(t, app, fiber.MethodPut, "/api/voucher/"+number, `{"kind": "transfer"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestDeleteVoucher(t *testing.T) {
	app, _ := newApp(t)
	number := stockIn(t, app, "W1", "P1", "10")

	status, out := doJSON(t, app, fiber.MethodDelete, "/api/voucher/"+number, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, number, out["voucher_number"])

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/voucher/"+number, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteVoucherConStockDependiente(t *testing.T) {
	app, _ := newApp(t)
	inNumber := stockIn(t, app, "W1", "P1", "10")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/stock-out", `{
		"warehouse_id": "W1",
		"date": "2026-05-02",
		"lines": [{"product_id": "P1", "quantity": 4}]
	}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, fiber.MethodDelete, "/api/voucher/"+inNumber, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DEPENDENT_STOCK", out["code"])
}

func TestGetLedgerStatement(t *testing.T) {
	app, _ := newApp(t)
	stockIn(t, app, "W1", "P1", "10")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/stock-out", `{
		"warehouse_id": "W1",
		"date": "2026-05-03",
		"lines": [{"product_id": "P1", "quantity": 4}]
	}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, fiber.MethodGet, "/api/ledger-statement?product_id=P1&warehouse_id=W1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "0", out["opening_balance"])
	assert.Equal(t, "6", out["closing_balance"])
	lines, ok := out["lines"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 2)
	last := lines[1].(map[string]any)
	assert.Equal(t, "-4", last["signed_quantity"])
	assert.Equal(t, "6", last["running_balance"])
}

func TestGetLedgerStatementSinProducto(t *testing.T) {
	app, _ := newApp(t)
	status, out := doJSON(t, app, fiber.MethodGet, "/api/ledger-statement", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestGetInventorySnapshot(t *testing.T) {
	app, _ := newApp(t)
	stockIn(t, app, "W1", "P1", "10")

	status, out := doJSON(t, app, fiber.MethodGet, "/api/inventory-snapshot?as_of=2026-05-01", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "2026-05-01", out["as_of"])
	locations, ok := out["locations"].([]any)
	require.True(t, ok)
	require.Len(t, locations, 1)
	row := locations[0].(map[string]any)
	assert.Equal(t, "P1", row["product_id"])
	assert.Equal(t, "10", row["quantity"])

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/inventory-snapshot", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetNextVoucherNumberNoConsume(t *testing.T) {
	app, _ := newApp(t)

	for i := 0; i < 2; i++ {
		status, out := doJSON(t, app, fiber.MethodGet, "/api/next-voucher-number?type=stock_in", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "SI00001", out["number"], "la consulta no consume la secuencia")
	}

	stockIn(t, app, "W1", "P1", "1")

	status, out := doJSON(t, app, fiber.MethodGet, "/api/next-voucher-number?type=stock_in", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "SI00002", out["number"])

	status, out = doJSON(t, app, fiber.MethodGet, "/api/next-voucher-number?type=ajuste", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestGetNextSKUYNextAccountCode(t *testing.T) {
	app, _ := newApp(t)

	// Sin configuración para el grupo, el kind no está registrado: 400.
	status, out := doJSON(t, app, fiber.MethodGet, "/api/next-sku?group_id=hardware", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/next-sku", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/next-account-code", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
