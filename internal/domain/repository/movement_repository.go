package repository

import "github.com/EduardoLubo/materiales-api/internal/domain/entity"

// MovementRepository puerto de persistencia del ledger de movimientos.
// El ledger es solo-agregado: no hay Update ni Delete; las correcciones son
// movimientos nuevos que compensan.
type MovementRepository interface {
	// Create persiste la cabecera y todas sus líneas; asigna IDs.
	Create(m *entity.Movement) error
	// GetByID devuelve el movimiento con sus líneas (nil si no existe).
	GetByID(id, clientID int64) (*entity.Movement, error)
	// ListBySerializedUnit historial completo de una unidad, del más reciente
	// al más antiguo.
	ListBySerializedUnit(unitID, clientID int64) ([]*entity.Movement, error)
}
