package ledger

import (
	"context"

	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del commit:
// verificación de stock, escritura del ledger y proyección de unidades salen
// todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		unitRepo repository.SerializedUnitRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}
