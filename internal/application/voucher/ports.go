package voucher

import (
	"context"

	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad todo-o-nada del motor:
// cada operación mutadora (registrar, editar, eliminar) corre en una sola tx y
// cualquier fallo la revierte entera, incluido el contador de secuencia.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
