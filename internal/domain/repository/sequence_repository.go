package repository

import (
	"context"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/entity"
)

// ScanSource identifica sobre qué identificadores existentes se escanea una
// secuencia al sembrarse: números de comprobante, SKUs por grupo de producto o
// códigos de cuenta por tipo.
type ScanSource string

const (
	ScanVouchers ScanSource = "vouchers"
	ScanProducts ScanSource = "products"
	ScanAccounts ScanSource = "accounts"
)

// ScanScope acota el escaneo: Key es el grupo de producto (ScanProducts) o el
// tipo de cuenta (ScanAccounts); vacío para comprobantes (ámbito global).
type ScanScope struct {
	Source ScanSource
	Key    string
}

// SequenceRepository materializa cada secuencia como un contador atómico por
// kind. El incremento serializa la asignación (dos llamadores concurrentes
// nunca observan el mismo valor); la primera asignación siembra el contador
// escaneando los identificadores existentes que casan con prefijo y longitud.
type SequenceRepository interface {
	// NextValue incrementa y devuelve el valor del contador de la secuencia,
	// sembrándolo si aún no existe.
	NextValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope ScanScope) (int64, error)

	// PeekValue devuelve el valor que asignaría NextValue, sin consumirlo.
	PeekValue(ctx context.Context, kind string, spec entity.SequenceSpec, scope ScanScope) (int64, error)

	// IdentifierExists indica si el identificador ya existe en la fuente del scope.
	IdentifierExists(ctx context.Context, scope ScanScope, identifier string) (bool, error)
}
