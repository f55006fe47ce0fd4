package ledger

import (
	"fmt"

	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

// Validate aplica las reglas topológicas al pedido normalizado. Puro, sin
// tocar almacenamiento; gana el primer fallo:
//  1. tipo de movimiento conocido
//  2. campos de origen/destino/cuadrilla exigidos por la regla
//  3. al menos una línea
//  4. toda cantidad estrictamente positiva (el ledger nunca guarda líneas
//     en cero ni negativas)
//  5. ninguna unidad serializada repetida dentro del mismo pedido
func Validate(req movement.Request) (movement.Validated, error) {
	t, ok := movement.ParseType(req.TypeLabel)
	if !ok {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindUnknownMovementType, req.TypeLabel)
	}
	rule, _ := movement.RuleFor(t)

	if req.OriginLocationID == nil {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindMissingTopologyField, "falta la ubicación de origen")
	}
	if rule.HasDestination && req.DestinationLocationID == nil {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindMissingTopologyField, "falta la ubicación de destino")
	}
	if rule.RequiresOriginCrew && req.OriginCrewID == nil {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindMissingTopologyField, "falta la cuadrilla de origen")
	}
	if rule.RequiresDestinationCrew && req.DestinationCrewID == nil {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindMissingTopologyField, "falta la cuadrilla de destino")
	}

	if len(req.Lines) == 0 {
		return movement.Validated{}, movement.NewValidationError(
			movement.KindEmptyMovement, "el movimiento no tiene líneas")
	}

	for _, l := range req.Lines {
		if !l.Quantity.IsPositive() {
			return movement.Validated{}, movement.NewValidationError(
				movement.KindInvalidQuantity,
				fmt.Sprintf("material %d: la cantidad debe ser mayor a cero, se recibió %s", l.MaterialID, l.Quantity))
		}
	}

	// Una misma unidad física no puede aparecer dos veces en un pedido.
	type unitKey struct {
		materialID int64
		serial     string
	}
	seen := make(map[unitKey]struct{})
	for _, l := range req.Lines {
		if !l.Serialized() {
			continue
		}
		k := unitKey{l.MaterialID, l.SerialCode}
		if _, dup := seen[k]; dup {
			return movement.Validated{}, movement.NewValidationError(
				movement.KindDuplicateSerializedUnit,
				fmt.Sprintf("material %d serie %s repetida en el pedido", l.MaterialID, l.SerialCode))
		}
		seen[k] = struct{}{}
	}

	return movement.Validated{Request: req, Type: t, Rule: rule}, nil
}

// ValidateRoster regla de planteles para el colaborador que crea cuadrillas:
// exactamente un JEFE DE CUADRILLA y sin personas repetidas. El commit de
// movimientos confía en que las cuadrillas ya cumplen esto y no lo re-valida.
func ValidateRoster(roster []entity.CrewMember) error {
	leads := 0
	seen := make(map[int64]struct{}, len(roster))
	for _, m := range roster {
		if _, dup := seen[m.PersonID]; dup {
			return movement.NewValidationError(movement.KindInvalidRoster,
				fmt.Sprintf("persona %d repetida en el plantel", m.PersonID))
		}
		seen[m.PersonID] = struct{}{}
		if m.Role == entity.RoleCrewLead {
			leads++
		}
	}
	if leads != 1 {
		return movement.NewValidationError(movement.KindInvalidRoster,
			fmt.Sprintf("el plantel debe tener exactamente un %s, tiene %d", entity.RoleCrewLead, leads))
	}
	return nil
}
