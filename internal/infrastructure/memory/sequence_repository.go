package memory

import (
	"context"
	"strconv"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores por kind bajo el mutex del store: la asignación
// queda serializada igual que con la fila contador de PostgreSQL.
type SequenceRepo struct {
	store *Store
}

// NewSequenceRepository construye el adaptador sobre el store.
func NewSequenceRepository(store *Store) *SequenceRepo {
	return &SequenceRepo{store: store}
}

// NextValue incrementa y devuelve el contador, sembrándolo del máximo heredado
// en la primera asignación.
func (r *SequenceRepo) NextValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sequences[kind]; !ok {
		seed, err := r.scanMaxLocked(spec, scope)
		if err != nil {
			return 0, err
		}
		r.store.sequences[kind] = seed
	}
	r.store.sequences[kind]++
	return r.store.sequences[kind], nil
}

// PeekValue devuelve el valor que asignaría NextValue, sin escribir.
func (r *SequenceRepo) PeekValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	value, ok := r.store.sequences[kind]
	if !ok {
		var err error
		value, err = r.scanMaxLocked(spec, scope)
		if err != nil {
			return 0, err
		}
	}
	return value + 1, nil
}

// IdentifierExists verifica el identificador contra la fuente del scope.
func (r *SequenceRepo) IdentifierExists(ctx context.Context, scope repository.ScanScope, identifier string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	switch scope.Source {
	case repository.ScanVouchers:
		for _, m := range r.store.movements {
			if m.VoucherNumber == identifier {
				return true, nil
			}
		}
	case repository.ScanProducts:
		for _, p := range r.store.products {
			if p.SKU == identifier && p.GroupID == scope.Key {
				return true, nil
			}
		}
	case repository.ScanAccounts:
		for _, a := range r.store.accounts {
			if a.Code == identifier && a.AccountType == scope.Key {
				return true, nil
			}
		}
	default:
		return false, domain.ErrInvalidInput
	}
	return false, nil
}

// scanMaxLocked devuelve el mayor sufijo numérico entre los identificadores
// que casan con el prefijo y la longitud exacta de la secuencia (mismo filtro
// que el adaptador PostgreSQL; ver entity.SequenceSpec.Matches).
func (r *SequenceRepo) scanMaxLocked(spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	var max int64
	consider := func(identifier string) {
		if !spec.Matches(identifier) {
			return
		}
		n, err := strconv.ParseInt(identifier[len(spec.Prefix):], 10, 64)
		if err != nil {
			return
		}
		if n > max {
			max = n
		}
	}
	switch scope.Source {
	case repository.ScanVouchers:
		for _, m := range r.store.movements {
			consider(m.VoucherNumber)
		}
	case repository.ScanProducts:
		for _, p := range r.store.products {
			if p.GroupID == scope.Key {
				consider(p.SKU)
			}
		}
	case repository.ScanAccounts:
		for _, a := range r.store.accounts {
			if a.AccountType == scope.Key {
				consider(a.Code)
			}
		}
	default:
		return 0, domain.ErrInvalidInput
	}
	return max, nil
}
