package dto

import "github.com/shopspring/decimal"

// StockResponse stock actual de una tupla (material, ubicación, cuadrilla).
type StockResponse struct {
	MaterialID   int64           `json:"material_id"`
	LocationKind string          `json:"location_kind"`
	LocationID   int64           `json:"location_id"`
	CrewID       *int64          `json:"crew_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SerializedUnitResponse proyección actual de una unidad serializada.
type SerializedUnitResponse struct {
	ID           int64   `json:"id"`
	MaterialID   int64   `json:"material_id"`
	SerialCode   string  `json:"serial_code"`
	State        string  `json:"state"`
	LocationKind *string `json:"location_kind,omitempty"`
	LocationID   *int64  `json:"location_id,omitempty"`
	CrewID       *int64  `json:"crew_id,omitempty"`
}
