package entity

import (
	"time"

	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// SerializedUnit unidad física individual de un material serializado.
// Su (ubicación, cuadrilla, estado) actual es la proyección de la última línea
// comprometida que la referenció; se crea una vez en la primera recepción y
// después solo se actualiza esa proyección.
type SerializedUnit struct {
	ID         int64
	MaterialID int64
	SerialCode string // único por material + cliente
	ClientID   int64

	LocationKind *movement.LocationKind
	LocationID   *int64
	CrewID       *int64
	State        movement.UnitState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection devuelve la proyección actual de la unidad.
func (u *SerializedUnit) Projection() movement.Projection {
	return movement.Projection{
		LocationKind: u.LocationKind,
		LocationID:   u.LocationID,
		CrewID:       u.CrewID,
		State:        u.State,
	}
}

// ApplyProjection pisa la proyección de la unidad con la resultante de un commit.
func (u *SerializedUnit) ApplyProjection(p movement.Projection, now time.Time) {
	u.LocationKind = p.LocationKind
	u.LocationID = p.LocationID
	u.CrewID = p.CrewID
	u.State = p.State
	u.UpdatedAt = now
}
