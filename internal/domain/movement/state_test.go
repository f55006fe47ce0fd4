package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

func ptr[T any](v T) *T { return &v }

func disponibleEnDeposito(depositoID int64) movement.Projection {
	return movement.Projection{
		LocationKind: ptr(movement.KindDeposito),
		LocationID:   ptr(depositoID),
		State:        movement.StateDisponible,
	}
}

// Ciclo completo: recepción -> envío a obra -> consumo. El consumo no cambia
// la ubicación, solo el estado y la cuadrilla responsable.
func TestNextProjection_CicloDeVida(t *testing.T) {
	recibido, err := movement.NextProjection(movement.TypeIngresoProveedor,
		movement.Projection{}, ptr(int64(1)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, movement.StateDisponible, recibido.State)
	require.NotNil(t, recibido.LocationKind)
	assert.Equal(t, movement.KindDeposito, *recibido.LocationKind)
	assert.Equal(t, int64(1), *recibido.LocationID)
	assert.Nil(t, recibido.CrewID)

	enObra, err := movement.NextProjection(movement.TypeEnvioAObra,
		recibido, ptr(int64(7)), nil, ptr(int64(3)))
	require.NoError(t, err)
	assert.Equal(t, movement.StateAsignado, enObra.State)
	assert.Equal(t, movement.KindObra, *enObra.LocationKind)
	assert.Equal(t, int64(7), *enObra.LocationID)
	assert.Equal(t, int64(3), *enObra.CrewID)

	instalado, err := movement.NextProjection(movement.TypeConsumoEnObra,
		enObra, nil, ptr(int64(3)), nil)
	require.NoError(t, err)
	assert.Equal(t, movement.StateInstalado, instalado.State)
	assert.Equal(t, int64(7), *instalado.LocationID, "el consumo no mueve la unidad")
	assert.Equal(t, int64(3), *instalado.CrewID)
}

func TestNextProjection_DevolucionDeObraVuelveDisponible(t *testing.T) {
	enObra := movement.Projection{
		LocationKind: ptr(movement.KindObra),
		LocationID:   ptr(int64(7)),
		CrewID:       ptr(int64(3)),
		State:        movement.StateAsignado,
	}
	devuelto, err := movement.NextProjection(movement.TypeDevolucionDeObra,
		enObra, ptr(int64(1)), ptr(int64(3)), nil)
	require.NoError(t, err)
	assert.Equal(t, movement.StateDisponible, devuelto.State)
	assert.Equal(t, movement.KindDeposito, *devuelto.LocationKind)
	assert.Nil(t, devuelto.CrewID, "de vuelta en depósito no hay cuadrilla")
}

func TestNextProjection_TransferenciasConservanEstado(t *testing.T) {
	d := disponibleEnDeposito(1)
	movido, err := movement.NextProjection(movement.TypeTransferenciaDepositos,
		d, ptr(int64(2)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, movement.StateDisponible, movido.State)
	assert.Equal(t, int64(2), *movido.LocationID)

	asignado := movement.Projection{
		LocationKind: ptr(movement.KindObra),
		LocationID:   ptr(int64(7)),
		CrewID:       ptr(int64(3)),
		State:        movement.StateAsignado,
	}
	cambiado, err := movement.NextProjection(movement.TypeTransferenciaCuadrillas,
		asignado, ptr(int64(8)), ptr(int64(3)), ptr(int64(4)))
	require.NoError(t, err)
	assert.Equal(t, movement.StateAsignado, cambiado.State)
	assert.Equal(t, int64(8), *cambiado.LocationID)
	assert.Equal(t, int64(4), *cambiado.CrewID)
}

func TestNextProjection_SalidasTerminales(t *testing.T) {
	d := disponibleEnDeposito(1)
	for _, tipo := range []movement.Type{movement.TypeDevolucionAProveedor, movement.TypeBajaMaterial} {
		baja, err := movement.NextProjection(tipo, d, nil, nil, nil)
		require.NoError(t, err, tipo.String())
		assert.Equal(t, movement.StateBaja, baja.State)
		assert.Nil(t, baja.LocationKind, "fuera de custodia no hay ubicación")
	}
}

// BAJA es terminal: cualquier transición desde ahí es un error de validación,
// nunca un no-op silencioso.
func TestNextProjection_BajaEsTerminal(t *testing.T) {
	baja := movement.Projection{State: movement.StateBaja}
	for _, tipo := range movement.AllTypes() {
		_, err := movement.NextProjection(tipo, baja, ptr(int64(1)), nil, nil)
		var vErr *movement.ValidationError
		require.ErrorAs(t, err, &vErr, tipo.String())
		assert.Equal(t, movement.KindUnitDecommissioned, vErr.Kind)
	}
}
