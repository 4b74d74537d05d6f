package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

func TestShelfRefNivelesDisjuntos(t *testing.T) {
	warehouse := entity.WarehouseLevel()
	shelf := entity.ShelfLevel("E-01")

	assert.False(t, warehouse.IsShelf())
	assert.True(t, shelf.IsShelf())
	assert.Equal(t, "", warehouse.Key())
	assert.Equal(t, "E-01", shelf.Key())

	// Mismo producto y bodega, distinto nivel: claves de ubicación distintas.
	locA := entity.StockLocation{ProductID: "P1", WarehouseID: "W1", Shelf: warehouse}
	locB := entity.StockLocation{ProductID: "P1", WarehouseID: "W1", Shelf: shelf}
	assert.NotEqual(t, locA.Key(), locB.Key())

	// Round-trip desde la columna persistida.
	assert.Equal(t, warehouse, entity.ShelfRefFromKey(""))
	assert.Equal(t, shelf, entity.ShelfRefFromKey("E-01"))
}

func TestSignedQuantity(t *testing.T) {
	in := &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: decimal.RequireFromString("7.5")}
	out := &entity.StockMovement{Type: entity.MovementTypeOUT, Quantity: decimal.RequireFromString("7.5")}

	assert.Equal(t, "7.5", in.SignedQuantity().String())
	assert.Equal(t, "-7.5", out.SignedQuantity().String())
}

func TestParseVoucherKind(t *testing.T) {
	for _, valid := range []string{"stock_in", "stock_out", "transfer", "production"} {
		kind, err := entity.ParseVoucherKind(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(kind))
	}
	_, err := entity.ParseVoucherKind("ajuste")
	assert.Error(t, err)
}

func TestVoucherKindMapping(t *testing.T) {
	assert.Equal(t, entity.MovementTypeIN, entity.KindStockIn.MovementType())
	assert.Equal(t, entity.MovementTypeOUT, entity.KindStockOut.MovementType())
	assert.Equal(t, entity.TransactionTypeStandard, entity.KindStockIn.TransactionType())
	assert.Equal(t, entity.TransactionTypeTransfer, entity.KindTransfer.TransactionType())
	assert.Equal(t, entity.TransactionTypeProduction, entity.KindProduction.TransactionType())
	assert.True(t, entity.KindStockOut.IsStandard())
	assert.False(t, entity.KindProduction.IsStandard())
}

func TestSequenceSpecFormatYMatches(t *testing.T) {
	spec := entity.SequenceSpec{Prefix: "TR", Length: 5}

	assert.Equal(t, "TR00001", spec.Format(1))
	assert.Equal(t, "TR00123", spec.Format(123))
	assert.Equal(t, 7, spec.TotalLength())

	assert.True(t, spec.Matches("TR00001"))
	assert.False(t, spec.Matches("TR001"), "longitud incorrecta")
	assert.False(t, spec.Matches("T000001"), "otro prefijo aunque la longitud coincida")

	// El filtro por longitud separa "T" de "TR".
	shortSpec := entity.SequenceSpec{Prefix: "T", Length: 5}
	assert.True(t, shortSpec.Matches("T00001"))
	assert.False(t, shortSpec.Matches("TR00001"), "TR00001 no es instancia del prefijo T")
}
