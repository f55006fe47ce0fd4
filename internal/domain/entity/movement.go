package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// Movement cabecera de un movimiento comprometido. Inmutable: las correcciones
// son movimientos nuevos que compensan, nunca edición ni borrado.
type Movement struct {
	ID             int64
	TransactionID  string // uuid de correlación del commit
	Description    string
	ReservationTag string
	Type           movement.Type

	OriginKind            movement.LocationKind
	OriginLocationID      *int64
	DestinationKind       *movement.LocationKind
	DestinationLocationID *int64
	OriginCrewID          *int64
	DestinationCrewID     *int64

	ClientID  int64
	CreatedBy int64
	CreatedAt time.Time

	Lines []MovementLine
}

// MovementLine línea del ledger: un material y, si es serializado, una unidad
// física. La cantidad siempre es > 0; el signo lo aporta la topología del tipo
// al plegar el ledger.
type MovementLine struct {
	ID               int64
	MovementID       int64
	MaterialID       int64
	Quantity         decimal.Decimal // precisión de 2 decimales
	SerializedUnitID *int64
	CreatedAt        time.Time
}
