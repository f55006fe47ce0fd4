package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

func TestRuleFor_TablaCompleta(t *testing.T) {
	cases := []struct {
		tipo       movement.Type
		origin     movement.LocationKind
		dest       movement.LocationKind
		hasDest    bool
		originCrew bool
		destCrew   bool
	}{
		{movement.TypeIngresoProveedor, movement.KindProveedor, movement.KindDeposito, true, false, false},
		{movement.TypeEnvioAObra, movement.KindDeposito, movement.KindObra, true, false, true},
		{movement.TypeDevolucionDeObra, movement.KindObra, movement.KindDeposito, true, true, false},
		{movement.TypeConsumoEnObra, movement.KindObra, "", false, true, false},
		{movement.TypeTransferenciaDepositos, movement.KindDeposito, movement.KindDeposito, true, false, false},
		{movement.TypeTransferenciaCuadrillas, movement.KindObra, movement.KindObra, true, true, true},
		{movement.TypeDevolucionAProveedor, movement.KindDeposito, movement.KindProveedor, true, false, false},
		{movement.TypeBajaMaterial, movement.KindDeposito, "", false, false, false},
	}

	for _, c := range cases {
		t.Run(c.tipo.String(), func(t *testing.T) {
			rule, ok := movement.RuleFor(c.tipo)
			require.True(t, ok)
			assert.Equal(t, c.origin, rule.Origin)
			assert.Equal(t, c.hasDest, rule.HasDestination)
			if c.hasDest {
				assert.Equal(t, c.dest, rule.Destination)
			}
			assert.Equal(t, c.originCrew, rule.RequiresOriginCrew)
			assert.Equal(t, c.destCrew, rule.RequiresDestinationCrew)
		})
	}
}

func TestRuleFor_CubreTodaLaEnumeracion(t *testing.T) {
	for _, tipo := range movement.AllTypes() {
		_, ok := movement.RuleFor(tipo)
		assert.True(t, ok, "falta regla para %s", tipo)
	}
}

func TestParseType(t *testing.T) {
	tipo, ok := movement.ParseType("ENVIO_A_OBRA")
	require.True(t, ok)
	assert.Equal(t, movement.TypeEnvioAObra, tipo)

	// El texto desconocido solo puede existir en el borde: adentro no hay
	// despacho por string.
	_, ok = movement.ParseType("REMITO INTERNO")
	assert.False(t, ok)

	_, ok = movement.ParseType("")
	assert.False(t, ok)
}

func TestEffects_PuntasProveedorNoTocanInventario(t *testing.T) {
	rule, _ := movement.RuleFor(movement.TypeIngresoProveedor)
	origin, dest := rule.Effects()
	assert.Equal(t, movement.NoEffect, origin, "el proveedor no lleva stock interno")
	assert.Equal(t, movement.Credit, dest)

	rule, _ = movement.RuleFor(movement.TypeDevolucionAProveedor)
	origin, dest = rule.Effects()
	assert.Equal(t, movement.Debit, origin)
	assert.Equal(t, movement.NoEffect, dest)
}

func TestEffects_ConsumoSoloDebita(t *testing.T) {
	rule, _ := movement.RuleFor(movement.TypeConsumoEnObra)
	origin, dest := rule.Effects()
	assert.Equal(t, movement.Debit, origin)
	assert.Equal(t, movement.NoEffect, dest)
}

func TestEffects_TransferenciaDebitaYAcredita(t *testing.T) {
	for _, tipo := range []movement.Type{movement.TypeTransferenciaDepositos, movement.TypeTransferenciaCuadrillas} {
		rule, _ := movement.RuleFor(tipo)
		origin, dest := rule.Effects()
		assert.Equal(t, movement.Debit, origin, tipo.String())
		assert.Equal(t, movement.Credit, dest, tipo.String())
	}
}
