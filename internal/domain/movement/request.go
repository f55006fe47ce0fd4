package movement

import "github.com/shopspring/decimal"

// Line línea normalizada de un movimiento. SerialCode vacío significa línea a
// granel (mercadería por cantidad); con serie la cantidad es implícitamente 1.
type Line struct {
	MaterialID int64
	SerialCode string
	Quantity   decimal.Decimal
}

// Serialized indica si la línea referencia una unidad física individual.
func (l Line) Serialized() bool { return l.SerialCode != "" }

// Request pedido de movimiento normalizado, listo para validar. TypeLabel
// conserva el texto del borde; la validación lo parsea al enum una sola vez.
type Request struct {
	Description    string
	ReservationTag string
	TypeLabel      string

	OriginLocationID      *int64
	DestinationLocationID *int64
	OriginCrewID          *int64
	DestinationCrewID     *int64

	ClientID int64
	UserID   int64

	Lines []Line
}

// Validated pedido validado: el tipo ya es enum y la regla está resuelta.
type Validated struct {
	Request
	Type Type
	Rule Rule
}
