package sequence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/infrastructure/memory"
)

// seedVoucher agrega un movimiento con el número dado, simulando datos heredados.
func seedVoucher(t *testing.T, store *memory.Store, number string) {
	t.Helper()
	err := memory.NewMovementRepository(store).Create(context.Background(), &entity.StockMovement{
		VoucherNumber:   number,
		ProductID:       "P1",
		WarehouseID:     "W1",
		Shelf:           entity.WarehouseLevel(),
		Type:            entity.MovementTypeIN,
		TransactionType: entity.TransactionTypeStandard,
		Quantity:        decimal.NewFromInt(1),
		Date:            time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestAllocateDesdeCero(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{"stock_in": {Prefix: "SI", Length: 5}}
	ctx := context.Background()

	first, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00001", first)

	second, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00002", second)
}

// El contador se siembra del máximo heredado que casa con prefijo y longitud.
func TestAllocateSembradoDeDatosHeredados(t *testing.T) {
	store := memory.NewStore()
	seedVoucher(t, store, "SI00041")
	seedVoucher(t, store, "SI00007")

	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{"stock_in": {Prefix: "SI", Length: 5}}

	number, err := sequence.Allocate(context.Background(), repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00042", number)
}

// Prefijos anidados: "T" y "TR" no se contaminan entre sí porque el filtro de
// siembra exige prefijo Y longitud total exacta.
func TestAllocatePrefijosAnidados(t *testing.T) {
	store := memory.NewStore()
	seedVoucher(t, store, "T00001")
	seedVoucher(t, store, "TR00001")

	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{
		"stock_in": {Prefix: "T", Length: 5},
		"transfer": {Prefix: "TR", Length: 5},
	}
	ctx := context.Background()

	siguiente, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "T00002", siguiente, "TR00001 no debe contar para el prefijo T")

	traslado, err := sequence.Allocate(ctx, repo, specs, "transfer")
	require.NoError(t, err)
	assert.Equal(t, "TR00002", traslado)
}

// Si el identificador formateado ya existe (el contador quedó detrás de datos
// cargados a mano después de la siembra), Allocate devuelve conflicto y el
// reintento avanza.
func TestAllocateConflictoYReintento(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{"stock_in": {Prefix: "SI", Length: 5}}
	ctx := context.Background()

	// Primera asignación siembra el contador en 0 y asigna SI00001.
	first, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00001", first)

	// Alguien inserta SI00002 a mano, por fuera de la secuencia.
	seedVoucher(t, store, "SI00002")

	_, err = sequence.Allocate(ctx, repo, specs, "stock_in")
	var conflict *domain.SequenceConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SI00002", conflict.Number)

	// El reintento pasa por encima del número ocupado.
	third, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00003", third)
}

func TestAllocateKindSinConfigurar(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSequenceRepository(store)
	_, err := sequence.Allocate(context.Background(), repo, sequence.StaticSpecs{}, "stock_in")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPeekNoConsume(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{"stock_in": {Prefix: "SI", Length: 5}}
	svc := sequence.NewService(repo, specs)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		peeked, err := svc.Peek(ctx, "stock_in")
		require.NoError(t, err)
		assert.Equal(t, "SI00001", peeked, "Peek repetido devuelve siempre lo mismo")
	}

	allocated, err := sequence.Allocate(ctx, repo, specs, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00001", allocated)

	peeked, err := svc.Peek(ctx, "stock_in")
	require.NoError(t, err)
	assert.Equal(t, "SI00002", peeked)
}

// Secuencias de SKU: un contador independiente por grupo de producto.
func TestSecuenciaDeSKUPorGrupo(t *testing.T) {
	store := memory.NewStore()
	store.SeedProduct("HW00009", "hardware")
	store.SeedProduct("SW00003", "software")

	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{
		sequence.SKUKind("hardware"): {Prefix: "HW", Length: 5},
		sequence.SKUKind("software"): {Prefix: "SW", Length: 5},
	}
	ctx := context.Background()

	hw, err := sequence.Allocate(ctx, repo, specs, sequence.SKUKind("hardware"))
	require.NoError(t, err)
	assert.Equal(t, "HW00010", hw)

	sw, err := sequence.Allocate(ctx, repo, specs, sequence.SKUKind("software"))
	require.NoError(t, err)
	assert.Equal(t, "SW00004", sw)
}

// Secuencias de código de cuenta: un contador independiente por tipo.
func TestSecuenciaDeCodigoDeCuenta(t *testing.T) {
	store := memory.NewStore()
	store.SeedAccount("CLI00120", "customer")

	repo := memory.NewSequenceRepository(store)
	specs := sequence.StaticSpecs{
		sequence.AccountKind("customer"): {Prefix: "CLI", Length: 5},
		sequence.AccountKind("supplier"): {Prefix: "PRV", Length: 5},
	}
	svc := sequence.NewService(repo, specs)
	ctx := context.Background()

	cli, err := svc.Peek(ctx, sequence.AccountKind("customer"))
	require.NoError(t, err)
	assert.Equal(t, "CLI00121", cli)

	prv, err := sequence.Allocate(ctx, repo, specs, sequence.AccountKind("supplier"))
	require.NoError(t, err)
	assert.Equal(t, "PRV00001", prv)
}
