package movement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationKind clase de error de validación (corregible por el cliente;
// nunca toca almacenamiento parcialmente).
type ValidationKind string

const (
	KindUnknownMovementType     ValidationKind = "UNKNOWN_MOVEMENT_TYPE"
	KindMissingTopologyField    ValidationKind = "MISSING_TOPOLOGY_FIELD"
	KindEmptyMovement           ValidationKind = "EMPTY_MOVEMENT"
	KindInvalidQuantity         ValidationKind = "INVALID_QUANTITY"
	KindDuplicateSerializedUnit ValidationKind = "DUPLICATE_SERIALIZED_UNIT"
	KindSerializedMismatch      ValidationKind = "SERIALIZED_MISMATCH"
	KindUnitDecommissioned      ValidationKind = "UNIT_DECOMMISSIONED"
	KindInvalidRoster           ValidationKind = "INVALID_ROSTER"
)

// ValidationError error de validación con clase y detalle. Siempre falla el
// pedido completo.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

// NewValidationError construye el error.
func NewValidationError(kind ValidationKind, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Detail: detail}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Shortfall faltante de una línea al momento del commit.
type Shortfall struct {
	MaterialID   int64
	MaterialCode string
	SerialCode   string // vacío para líneas a granel
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

// InsufficientStockError condición de negocio: una o más líneas no pueden
// satisfacerse. Se reportan todos los faltantes juntos para que el cliente
// corrija el pedido de una sola vez; una línea corta falla el movimiento entero.
type InsufficientStockError struct {
	Lines []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, s := range e.Lines {
		id := s.MaterialCode
		if id == "" {
			id = fmt.Sprintf("material %d", s.MaterialID)
		}
		if s.SerialCode != "" {
			id += " serie " + s.SerialCode
		}
		parts = append(parts, fmt.Sprintf("%s: pedido %s, disponible %s", id, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}
