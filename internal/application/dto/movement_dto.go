package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Ref identificador opcional en un request. Acepta número o string JSON;
// vacío, null o ausente normaliza a "no provisto" (Valid=false) para
// distinguirlo de un cero legítimo.
type Ref struct {
	Value int64
	Valid bool
}

// Ptr devuelve el valor como puntero, nil si no fue provisto.
func (r Ref) Ptr() *int64 {
	if !r.Valid {
		return nil
	}
	v := r.Value
	return &v
}

// UnmarshalJSON coerciona number o string a entero; blanco/null -> no provisto.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*r = Ref{Value: v, Valid: true}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ref{Value: v, Valid: true}
	return nil
}

// MarshalJSON serializa el valor o null si no fue provisto.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// CreateMovementLineRequest línea candidata de un movimiento.
type CreateMovementLineRequest struct {
	MaterialID Ref             `json:"material_id"`
	SerialCode string          `json:"serial_code,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateMovementRequest body para POST /api/movements. La identidad
// (cliente y usuario actuante) llega por headers desde la capa de auth externa.
type CreateMovementRequest struct {
	Description    string `json:"description"`
	ReservationTag string `json:"reservation_tag,omitempty"`
	Type           string `json:"type"`

	OriginLocationID      Ref `json:"origin_location_id"`
	DestinationLocationID Ref `json:"destination_location_id"`
	OriginCrewID          Ref `json:"origin_crew_id"`
	DestinationCrewID     Ref `json:"destination_crew_id"`

	Lines []CreateMovementLineRequest `json:"lines"`
}

// MovementCreatedResponse respuesta de un commit exitoso.
type MovementCreatedResponse struct {
	ID int64 `json:"id"`
}

// ShortfallDTO una línea corta en una respuesta de stock insuficiente.
type ShortfallDTO struct {
	MaterialID   int64           `json:"material_id"`
	MaterialCode string          `json:"material_code"`
	SerialCode   string          `json:"serial_code,omitempty"`
	Requested    decimal.Decimal `json:"requested"`
	Available    decimal.Decimal `json:"available"`
}

// InsufficientStockResponse cuerpo del 409 de faltantes. El cliente lo
// renderiza como diálogo de faltantes, no como error genérico.
type InsufficientStockResponse struct {
	Code  string         `json:"code"` // siempre INSUFFICIENT_STOCK
	Lines []ShortfallDTO `json:"lines"`
}

// MovementLineResponse línea de un movimiento comprometido.
type MovementLineResponse struct {
	ID               int64           `json:"id"`
	MaterialID       int64           `json:"material_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	SerializedUnitID *int64          `json:"serialized_unit_id,omitempty"`
}

// MovementResponse movimiento comprometido con sus líneas (vista de auditoría).
type MovementResponse struct {
	ID                    int64                  `json:"id"`
	Description           string                 `json:"description"`
	ReservationTag        string                 `json:"reservation_tag,omitempty"`
	Type                  string                 `json:"type"`
	OriginKind            string                 `json:"origin_kind"`
	OriginLocationID      *int64                 `json:"origin_location_id,omitempty"`
	DestinationKind       *string                `json:"destination_kind,omitempty"`
	DestinationLocationID *int64                 `json:"destination_location_id,omitempty"`
	OriginCrewID          *int64                 `json:"origin_crew_id,omitempty"`
	DestinationCrewID     *int64                 `json:"destination_crew_id,omitempty"`
	CreatedBy             int64                  `json:"created_by"`
	CreatedAt             string                 `json:"created_at"`
	Lines                 []MovementLineResponse `json:"lines"`
}

// MovementTypeRuleDTO entrada de la tabla de reglas (para armado de formularios).
type MovementTypeRuleDTO struct {
	Type                    string `json:"type"`
	OriginKind              string `json:"origin_kind"`
	DestinationKind         string `json:"destination_kind,omitempty"`
	RequiresOriginCrew      bool   `json:"requires_origin_crew"`
	RequiresDestinationCrew bool   `json:"requires_destination_crew"`
}
