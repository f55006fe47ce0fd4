package repository

import "github.com/EduardoLubo/materiales-api/internal/domain/entity"

// SerializedUnitRepository puerto de las unidades serializadas y su proyección.
type SerializedUnitRepository interface {
	// Create registra la unidad en su primera recepción; asigna ID.
	Create(u *entity.SerializedUnit) error
	// GetByID devuelve la unidad (nil si no existe).
	GetByID(id, clientID int64) (*entity.SerializedUnit, error)
	// GetBySerial busca por (material, serie, cliente); nil si no existe.
	GetBySerial(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error)
	// GetBySerialForUpdate ídem GetBySerial pero bloqueando la fila, para que
	// dos commits concurrentes no muevan la misma unidad.
	GetBySerialForUpdate(materialID int64, serialCode string, clientID int64) (*entity.SerializedUnit, error)
	// UpdateProjection persiste la proyección actual (ubicación, cuadrilla, estado).
	UpdateProjection(u *entity.SerializedUnit) error
}
