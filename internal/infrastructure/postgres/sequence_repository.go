package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo materializa cada secuencia como una fila contador en la tabla
// sequences. El UPDATE incrementa bajo bloqueo de fila, de modo que la
// asignación queda serializada por kind: el patrón "escanear el máximo y sumar
// uno" solo se usa una vez, al sembrar el contador desde los identificadores
// heredados.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextValue incrementa y devuelve el contador, sembrándolo si no existe.
func (r *SequenceRepo) NextValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	value, err := r.increment(ctx, kind)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// Primera asignación: sembrar desde el máximo heredado y reintentar.
	// ON CONFLICT DO NOTHING hace converger a dos sembradores concurrentes.
	seed, err := r.scanMax(ctx, spec, scope)
	if err != nil {
		return 0, err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sequences (kind, prefix, padding, value, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (kind) DO NOTHING`,
		kind, spec.Prefix, spec.Length, seed,
	)
	if err != nil {
		return 0, fmt.Errorf("seed sequence %q: %w", kind, err)
	}
	return r.increment(ctx, kind)
}

// PeekValue devuelve el valor que asignaría NextValue, sin escribir nada.
func (r *SequenceRepo) PeekValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx, `SELECT value FROM sequences WHERE kind = $1`, kind).Scan(&value)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("peek sequence %q: %w", kind, err)
		}
		// Contador aún no sembrado: el valor vigente es el máximo heredado.
		value, err = r.scanMax(ctx, spec, scope)
		if err != nil {
			return 0, err
		}
	}
	return value + 1, nil
}

// IdentifierExists verifica el identificador contra la fuente del scope.
func (r *SequenceRepo) IdentifierExists(ctx context.Context, scope repository.ScanScope, identifier string) (bool, error) {
	var query string
	args := []any{identifier}
	switch scope.Source {
	case repository.ScanVouchers:
		query = `SELECT EXISTS (SELECT 1 FROM stock_movements WHERE voucher_number = $1)`
	case repository.ScanProducts:
		query = `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1 AND group_id = $2)`
		args = append(args, scope.Key)
	case repository.ScanAccounts:
		query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE code = $1 AND account_type = $2)`
		args = append(args, scope.Key)
	default:
		return false, domain.ErrInvalidInput
	}
	var exists bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("identifier exists: %w", err)
	}
	return exists, nil
}

func (r *SequenceRepo) increment(ctx context.Context, kind string) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx, `
		UPDATE sequences SET value = value + 1, updated_at = now()
		WHERE kind = $1
		RETURNING value`, kind,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return 0, fmt.Errorf("increment sequence %q: %w", kind, err)
	}
	return value, nil
}

// scanMax devuelve el mayor sufijo numérico entre los identificadores existentes
// que empiezan por el prefijo Y tienen exactamente la longitud configurada.
// El filtro por longitud es obligatorio: sin él, con prefijos "T" y "TR",
// "TR00001" se tomaría como instancia del prefijo "T".
func (r *SequenceRepo) scanMax(ctx context.Context, spec entity.SequenceSpec, scope repository.ScanScope) (int64, error) {
	suffixFrom := len(spec.Prefix) + 1
	pattern := spec.Prefix + "%"

	var query string
	var args []any
	switch scope.Source {
	case repository.ScanVouchers:
		query = `
			SELECT COALESCE(MAX(CAST(substr(voucher_number, $1) AS BIGINT)), 0)
			FROM stock_movements
			WHERE voucher_number LIKE $2 AND length(voucher_number) = $3
			  AND substr(voucher_number, $1) ~ '^[0-9]+$'`
		args = []any{suffixFrom, pattern, spec.TotalLength()}
	case repository.ScanProducts:
		query = `
			SELECT COALESCE(MAX(CAST(substr(sku, $1) AS BIGINT)), 0)
			FROM products
			WHERE sku LIKE $2 AND length(sku) = $3 AND group_id = $4
			  AND substr(sku, $1) ~ '^[0-9]+$'`
		args = []any{suffixFrom, pattern, spec.TotalLength(), scope.Key}
	case repository.ScanAccounts:
		query = `
			SELECT COALESCE(MAX(CAST(substr(code, $1) AS BIGINT)), 0)
			FROM accounts
			WHERE code LIKE $2 AND length(code) = $3 AND account_type = $4
			  AND substr(code, $1) ~ '^[0-9]+$'`
		args = []any{suffixFrom, pattern, spec.TotalLength(), scope.Key}
	default:
		return 0, domain.ErrInvalidInput
	}

	var max int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("scan max suffix: %w", err)
	}
	return max, nil
}
