package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain"
	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/repository"
)

// QueryUseCase lecturas del ledger: stock por tupla, proyección e historial de
// unidades serializadas, movimientos de auditoría. Consumido por reporting/UI.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	unitRepo  repository.SerializedUnitRepository
	movRepo   repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	unitRepo repository.SerializedUnitRepository,
	movRepo repository.MovementRepository,
) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, unitRepo: unitRepo, movRepo: movRepo}
}

// AvailableQuantity stock a granel disponible en la tupla.
func (uc *QueryUseCase) AvailableQuantity(key entity.StockKey) (decimal.Decimal, error) {
	s, err := uc.stockRepo.Get(key)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Quantity, nil
}

// DerivedQuantity cantidad plegada desde el ledger (derivación de control,
// debe coincidir con AvailableQuantity).
func (uc *QueryUseCase) DerivedQuantity(key entity.StockKey) (decimal.Decimal, error) {
	return uc.stockRepo.FoldQuantity(key)
}

// UnitProjection proyección actual (ubicación, cuadrilla, estado) de una unidad.
func (uc *QueryUseCase) UnitProjection(id, clientID int64) (*entity.SerializedUnit, error) {
	u, err := uc.unitRepo.GetByID(id, clientID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// UnitHistory historial completo de movimientos de una unidad serializada.
func (uc *QueryUseCase) UnitHistory(id, clientID int64) ([]*entity.Movement, error) {
	u, err := uc.unitRepo.GetByID(id, clientID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListBySerializedUnit(id, clientID)
}

// MovementByID movimiento comprometido con sus líneas.
func (uc *QueryUseCase) MovementByID(id, clientID int64) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(id, clientID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
