package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/report"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/infrastructure/memory"
)

var reportSpecs = sequence.StaticSpecs{
	"stock_in":   {Prefix: "SI", Length: 5},
	"stock_out":  {Prefix: "SO", Length: 5},
	"transfer":   {Prefix: "TR", Length: 5},
	"production": {Prefix: "PR", Length: 5},
}

func fecha(day int) time.Time {
	return time.Date(2026, time.April, day, 0, 0, 0, 0, time.UTC)
}

func fechaPtr(day int) *time.Time {
	d := fecha(day)
	return &d
}

// seedHistory registra la historia de P1 en W1 a través del procesador, para
// que el log quede exactamente como lo dejaría la operación real:
//   día 1  IN  10   (saldo 10)
//   día 3  OUT  4   (saldo  6)
//   día 5  TR   2 → W2 (saldo 4 en W1, 2 en W2)
//   día 7  IN   5   (saldo  9)
func seedHistory(t *testing.T) (*report.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	proc := voucher.NewProcessor(memory.NewTxRunner(store), reportSpecs)
	ctx := context.Background()

	record := func(kind entity.VoucherKind, day int, q string) {
		t.Helper()
		_, err := proc.RecordStandard(ctx, kind, voucher.StandardInput{
			Header: voucher.StandardHeader{WarehouseID: "W1", Date: fecha(day)},
			Lines: []voucher.StandardLine{{
				ProductID: "P1", Quantity: decimal.RequireFromString(q), Shelf: entity.WarehouseLevel(),
			}},
		})
		require.NoError(t, err)
	}

	record(entity.KindStockIn, 1, "10")
	record(entity.KindStockOut, 3, "4")
	_, err := proc.RecordTransfer(ctx, voucher.TransferInput{
		Header: voucher.TransferHeader{SourceWarehouseID: "W1", DestWarehouseID: "W2", Date: fecha(5)},
		Lines: []voucher.TransferLine{{
			ProductID: "P1", Quantity: decimal.RequireFromString("2"),
			SourceShelf: entity.WarehouseLevel(), DestShelf: entity.WarehouseLevel(),
		}},
	})
	require.NoError(t, err)
	record(entity.KindStockIn, 7, "5")

	return report.NewEngine(memory.NewMovementRepository(store)), store
}

func TestStatementSaldoAcumulado(t *testing.T) {
	engine, _ := seedHistory(t)

	st, err := engine.Statement(context.Background(), report.StatementQuery{
		ProductID: "P1", WarehouseID: "W1",
	})
	require.NoError(t, err)

	assert.Equal(t, "0", st.OpeningBalance.String())
	require.Len(t, st.Lines, 4)

	balances := []string{"10", "6", "4", "9"}
	for i, line := range st.Lines {
		assert.Equal(t, balances[i], line.RunningBalance.String(), "línea %d", i)
	}
	assert.Equal(t, "9", st.ClosingBalance.String())
	assert.Equal(t, entity.TransactionTypeTransfer, st.Lines[2].TransactionType)
	assert.Equal(t, "-2", st.Lines[2].SignedQuantity.String())
}

func TestStatementConApertura(t *testing.T) {
	engine, _ := seedHistory(t)

	// Rango [día 4, día 6]: la apertura acumula IN 10 y OUT 4.
	st, err := engine.Statement(context.Background(), report.StatementQuery{
		ProductID: "P1", WarehouseID: "W1",
		From: fechaPtr(4), To: fechaPtr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, "6", st.OpeningBalance.String())
	require.Len(t, st.Lines, 1)
	assert.Equal(t, "TR00001", st.Lines[0].VoucherNumber)
	assert.Equal(t, "4", st.ClosingBalance.String())
}

// Con rango abierto por la derecha, el cierre del extracto cuadra con la
// cantidad viva del ledger.
func TestStatementConciliaConLedger(t *testing.T) {
	engine, store := seedHistory(t)
	ctx := context.Background()

	st, err := engine.Statement(ctx, report.StatementQuery{ProductID: "P1", WarehouseID: "W1"})
	require.NoError(t, err)

	live, err := memory.NewStockRepository(store).Get(ctx,
		entity.StockLocation{ProductID: "P1", WarehouseID: "W1", Shelf: entity.WarehouseLevel()})
	require.NoError(t, err)
	assert.True(t, st.ClosingBalance.Equal(live), "cierre %s vs vivo %s", st.ClosingBalance, live)
}

// Sin filtro de bodega, el extracto cruza bodegas: el par del traslado se
// cancela y el cierre es el total del producto.
func TestStatementTodasLasBodegas(t *testing.T) {
	engine, _ := seedHistory(t)

	st, err := engine.Statement(context.Background(), report.StatementQuery{ProductID: "P1"})
	require.NoError(t, err)
	require.Len(t, st.Lines, 5)
	assert.Equal(t, "11", st.ClosingBalance.String())
}

func TestStatementValidacion(t *testing.T) {
	engine, _ := seedHistory(t)
	ctx := context.Background()

	_, err := engine.Statement(ctx, report.StatementQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto requerido")

	shelf := entity.ShelfLevel("E-01")
	_, err = engine.Statement(ctx, report.StatementQuery{ProductID: "P1", Shelf: &shelf})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estantería sin bodega")
}

func TestSnapshotHistorico(t *testing.T) {
	engine, _ := seedHistory(t)
	ctx := context.Background()

	// Al día 4 el traslado aún no existía.
	rows, err := engine.Snapshot(ctx, fecha(4), report.SnapshotScope{ProductID: "P1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "W1", rows[0].Location.WarehouseID)
	assert.Equal(t, "6", rows[0].Quantity.String())

	// Al día 6 el stock ya está repartido entre W1 y W2.
	rows, err = engine.Snapshot(ctx, fecha(6), report.SnapshotScope{ProductID: "P1"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byWarehouse := map[string]string{}
	for _, row := range rows {
		byWarehouse[row.Location.WarehouseID] = row.Quantity.String()
	}
	assert.Equal(t, "4", byWarehouse["W1"])
	assert.Equal(t, "2", byWarehouse["W2"])
}

func TestSnapshotValidacion(t *testing.T) {
	engine, _ := seedHistory(t)
	_, err := engine.Snapshot(context.Background(), time.Time{}, report.SnapshotScope{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
