package movement

// Projection estado actual de una unidad serializada: dónde está, con qué
// cuadrilla y en qué estado de ciclo de vida. Es la proyección de la última
// línea de movimiento comprometida que la referenció.
type Projection struct {
	LocationKind *LocationKind
	LocationID   *int64
	CrewID       *int64
	State        UnitState
}

// NextProjection aplica la máquina de estados de unidades serializadas:
// dado el tipo de movimiento y la topología declarada, produce la proyección
// resultante. Desde BAJA no hay transiciones (ErrUnitDecommissioned).
func NextProjection(t Type, current Projection, destLocationID, originCrewID, destCrewID *int64) (Projection, error) {
	if current.State == StateBaja {
		return Projection{}, NewValidationError(KindUnitDecommissioned, "la unidad está dada de baja")
	}
	rule, ok := RuleFor(t)
	if !ok {
		return Projection{}, NewValidationError(KindUnknownMovementType, t.String())
	}

	switch t {
	case TypeIngresoProveedor, TypeDevolucionDeObra:
		// Recepción en depósito: queda disponible, sin cuadrilla.
		kind := rule.Destination
		return Projection{LocationKind: &kind, LocationID: destLocationID, State: StateDisponible}, nil

	case TypeEnvioAObra:
		kind := rule.Destination
		return Projection{LocationKind: &kind, LocationID: destLocationID, CrewID: destCrewID, State: StateAsignado}, nil

	case TypeConsumoEnObra:
		// La unidad no se mueve: queda instalada en la obra, a cargo de la
		// cuadrilla que la consumió.
		next := current
		next.CrewID = originCrewID
		next.State = StateInstalado
		return next, nil

	case TypeTransferenciaDepositos:
		kind := rule.Destination
		return Projection{LocationKind: &kind, LocationID: destLocationID, State: current.State}, nil

	case TypeTransferenciaCuadrillas:
		kind := rule.Destination
		return Projection{LocationKind: &kind, LocationID: destLocationID, CrewID: destCrewID, State: current.State}, nil

	case TypeDevolucionAProveedor, TypeBajaMaterial:
		// La unidad sale de la custodia del cliente: removimiento terminal.
		return Projection{State: StateBaja}, nil
	}
	return Projection{}, NewValidationError(KindUnknownMovementType, t.String())
}
