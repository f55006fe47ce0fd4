package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// StockKey tupla de stock a granel: material en una ubicación, opcionalmente
// en poder de una cuadrilla, dentro de un cliente. Las unidades serializadas
// no pasan por acá: su disponibilidad es binaria vía proyección.
type StockKey struct {
	MaterialID   int64
	LocationKind movement.LocationKind
	LocationID   int64
	CrewID       *int64
	ClientID     int64
}

// String clave estable (para mapas en memoria y logs).
func (k StockKey) String() string {
	crew := int64(0)
	if k.CrewID != nil {
		crew = *k.CrewID
	}
	return fmt.Sprintf("%d/%s/%d/%d/%d", k.MaterialID, k.LocationKind, k.LocationID, crew, k.ClientID)
}

// Stock stock actual de una tupla (tabla materializada, mantenida dentro de la
// misma transacción que escribe el ledger). Nunca negativo.
type Stock struct {
	Key       StockKey
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
