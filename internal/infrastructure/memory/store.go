// Package memory implementa los repositorios del motor sobre estructuras en
// memoria. Se usa en modo desarrollo (STORAGE_DRIVER=memory, sin PostgreSQL) y
// en los tests de los casos de uso. El TxRunner imita la atomicidad de la BD
// con copia-al-iniciar y restauración si el callback falla.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// ProductRow fila mínima de la fuente de SKUs (el CRUD maestro queda fuera del núcleo).
type ProductRow struct {
	SKU     string
	GroupID string
}

// AccountRow fila mínima de la fuente de códigos de cuenta.
type AccountRow struct {
	Code        string
	AccountType string
}

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	stock     map[string]decimal.Decimal // clave = StockLocation.Key()
	movements []*entity.StockMovement    // orden de inserción = orden de commit
	sequences map[string]int64           // kind -> valor vigente del contador
	products  []ProductRow
	accounts  []AccountRow
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		stock:     map[string]decimal.Decimal{},
		sequences: map[string]int64{},
	}
}

// SeedProduct agrega una fila a la fuente de SKUs (datos maestros de ejemplo).
func (s *Store) SeedProduct(sku, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, ProductRow{SKU: sku, GroupID: groupID})
}

// SeedAccount agrega una fila a la fuente de códigos de cuenta.
func (s *Store) SeedAccount(code, accountType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, AccountRow{Code: code, AccountType: accountType})
}

// storeState es la copia profunda que el TxRunner toma antes de cada tx.
type storeState struct {
	stock     map[string]decimal.Decimal
	movements []*entity.StockMovement
	sequences map[string]int64
}

func (s *Store) snapshot() storeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := storeState{
		stock:     make(map[string]decimal.Decimal, len(s.stock)),
		movements: make([]*entity.StockMovement, len(s.movements)),
		sequences: make(map[string]int64, len(s.sequences)),
	}
	for k, v := range s.stock {
		st.stock[k] = v
	}
	for i, m := range s.movements {
		clone := *m
		st.movements[i] = &clone
	}
	for k, v := range s.sequences {
		st.sequences[k] = v
	}
	return st
}

func (s *Store) restore(st storeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = st.stock
	s.movements = st.movements
	s.sequences = st.sequences
}
