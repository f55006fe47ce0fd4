package entity

import "time"

// Material ítem del maestro de materiales. Serialized es fijo a la creación;
// solo puede volver a false cuando ninguna unidad serializada lo referencia
// (precondición del CRUD de maestros, no de este motor).
type Material struct {
	ID          int64
	Code        string
	Description string
	UnitID      int64 // unidad de medida
	Serialized  bool
	ClientID    int64
	CreatedAt   time.Time
}
