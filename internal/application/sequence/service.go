package sequence

import (
	"context"
	"fmt"
	"strings"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// Prefijos de kind para secuencias por ámbito: SKU por grupo de producto y
// código de cuenta por tipo. Los cuatro tipos de comprobante usan su propio
// kind global (stock_in, stock_out, transfer, production).
const (
	SKUKindPrefix     = "sku:"
	AccountKindPrefix = "account:"
)

// SKUKind devuelve el kind de la secuencia de SKUs del grupo dado.
func SKUKind(groupID string) string { return SKUKindPrefix + groupID }

// AccountKind devuelve el kind de la secuencia de códigos del tipo de cuenta dado.
func AccountKind(accountType string) string { return AccountKindPrefix + accountType }

// SpecResolver resuelve el (prefijo, longitud) configurado para un kind.
// La configuración es externa al motor; ver pkg/config.
type SpecResolver interface {
	Spec(kind string) (entity.SequenceSpec, bool)
}

// StaticSpecs es un SpecResolver sobre un mapa fijo.
type StaticSpecs map[string]entity.SequenceSpec

func (s StaticSpecs) Spec(kind string) (entity.SequenceSpec, bool) {
	spec, ok := s[kind]
	return spec, ok
}

// ScopeFor deriva el ámbito de escaneo de un kind: comprobantes (global),
// SKUs (por grupo) o códigos de cuenta (por tipo).
func ScopeFor(kind string) (repository.ScanScope, error) {
	switch entity.VoucherKind(kind) {
	case entity.KindStockIn, entity.KindStockOut, entity.KindTransfer, entity.KindProduction:
		return repository.ScanScope{Source: repository.ScanVouchers}, nil
	}
	if key, ok := strings.CutPrefix(kind, SKUKindPrefix); ok && key != "" {
		return repository.ScanScope{Source: repository.ScanProducts, Key: key}, nil
	}
	if key, ok := strings.CutPrefix(kind, AccountKindPrefix); ok && key != "" {
		return repository.ScanScope{Source: repository.ScanAccounts, Key: key}, nil
	}
	return repository.ScanScope{}, fmt.Errorf("kind de secuencia %q: %w", kind, domain.ErrInvalidInput)
}

// Allocate asigna y consume el siguiente identificador de la secuencia.
// Corre sobre el repo que reciba: atado a una tx dentro del procesador de
// comprobantes, o al pool para asignaciones sueltas. Si el identificador
// formateado ya existe en la fuente devuelve *domain.SequenceConflictError
// (el contador quedó detrás de datos cargados a mano; reintentar avanza).
func Allocate(ctx context.Context, repo repository.SequenceRepository, specs SpecResolver, kind string) (string, error) {
	spec, ok := specs.Spec(kind)
	if !ok {
		return "", fmt.Errorf("secuencia %q sin configurar: %w", kind, domain.ErrInvalidInput)
	}
	scope, err := ScopeFor(kind)
	if err != nil {
		return "", err
	}
	value, err := repo.NextValue(ctx, kind, spec, scope)
	if err != nil {
		return "", err
	}
	number := spec.Format(value)
	exists, err := repo.IdentifierExists(ctx, scope, number)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &domain.SequenceConflictError{Kind: kind, Number: number}
	}
	return number, nil
}

// Service expone la vista de solo lectura de las secuencias para los
// endpoints de consulta (prellenado de formularios). El número definitivo lo
// asigna la transacción que registra el comprobante.
type Service struct {
	repo  repository.SequenceRepository
	specs SpecResolver
}

// NewService construye el servicio de secuencias.
func NewService(repo repository.SequenceRepository, specs SpecResolver) *Service {
	return &Service{repo: repo, specs: specs}
}

// Peek devuelve el identificador que asignaría la próxima llamada a Allocate,
// sin consumirlo.
func (s *Service) Peek(ctx context.Context, kind string) (string, error) {
	spec, ok := s.specs.Spec(kind)
	if !ok {
		return "", fmt.Errorf("secuencia %q sin configurar: %w", kind, domain.ErrInvalidInput)
	}
	scope, err := ScopeFor(kind)
	if err != nil {
		return "", err
	}
	value, err := s.repo.PeekValue(ctx, kind, spec, scope)
	if err != nil {
		return "", err
	}
	return spec.Format(value), nil
}
