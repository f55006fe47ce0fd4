package repository

import "github.com/EduardoLubo/materiales-api/internal/domain/entity"

// MaterialRepository puerto de lectura del maestro de materiales. El CRUD vive
// en otro sistema; el motor solo necesita código y bandera de serializado.
type MaterialRepository interface {
	// GetByID devuelve el material (nil si no existe o no es del cliente).
	GetByID(id, clientID int64) (*entity.Material, error)
}
