package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardoLubo/materiales-api/internal/application/ledger"
	"github.com/EduardoLubo/materiales-api/internal/domain/entity"
	"github.com/EduardoLubo/materiales-api/internal/domain/movement"
)

func ptr[T any](v T) *T { return &v }

func validRequest() movement.Request {
	return movement.Request{
		TypeLabel:             "ENVIO_A_OBRA",
		OriginLocationID:      ptr(int64(1)),
		DestinationLocationID: ptr(int64(7)),
		DestinationCrewID:     ptr(int64(3)),
		ClientID:              1,
		UserID:                1,
		Lines: []movement.Line{
			{MaterialID: 101, Quantity: decimal.NewFromInt(2)},
		},
	}
}

func kindOf(t *testing.T, err error) movement.ValidationKind {
	t.Helper()
	var vErr *movement.ValidationError
	require.ErrorAs(t, err, &vErr)
	return vErr.Kind
}

func TestValidate_Ok(t *testing.T) {
	v, err := ledger.Validate(validRequest())
	require.NoError(t, err)
	assert.Equal(t, movement.TypeEnvioAObra, v.Type)
	assert.Equal(t, movement.KindDeposito, v.Rule.Origin)
}

func TestValidate_TipoDesconocido(t *testing.T) {
	req := validRequest()
	req.TypeLabel = "PRESTAMO"
	_, err := ledger.Validate(req)
	assert.Equal(t, movement.KindUnknownMovementType, kindOf(t, err))
}

func TestValidate_CamposTopologicos(t *testing.T) {
	t.Run("sin origen", func(t *testing.T) {
		req := validRequest()
		req.OriginLocationID = nil
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindMissingTopologyField, kindOf(t, err))
	})
	t.Run("sin destino", func(t *testing.T) {
		req := validRequest()
		req.DestinationLocationID = nil
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindMissingTopologyField, kindOf(t, err))
	})
	t.Run("sin cuadrilla destino", func(t *testing.T) {
		req := validRequest()
		req.DestinationCrewID = nil
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindMissingTopologyField, kindOf(t, err))
	})
	t.Run("consumo exige cuadrilla origen", func(t *testing.T) {
		req := movement.Request{
			TypeLabel:        "CONSUMO_EN_OBRA",
			OriginLocationID: ptr(int64(7)),
			Lines:            []movement.Line{{MaterialID: 1, Quantity: decimal.NewFromInt(1)}},
		}
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindMissingTopologyField, kindOf(t, err))
	})
}

func TestValidate_SinLineas(t *testing.T) {
	req := validRequest()
	req.Lines = nil
	_, err := ledger.Validate(req)
	assert.Equal(t, movement.KindEmptyMovement, kindOf(t, err))
}

// El ledger nunca guarda líneas en cero ni negativas: una cantidad negativa
// en un movimiento que solo debita invertiría el débito en un crédito.
func TestValidate_CantidadNoPositiva(t *testing.T) {
	t.Run("negativa", func(t *testing.T) {
		req := validRequest()
		req.Lines = []movement.Line{{MaterialID: 101, Quantity: decimal.NewFromInt(-5)}}
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindInvalidQuantity, kindOf(t, err))
	})
	t.Run("cero", func(t *testing.T) {
		req := validRequest()
		req.Lines = []movement.Line{{MaterialID: 101, Quantity: decimal.Zero}}
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindInvalidQuantity, kindOf(t, err))
	})
	t.Run("una línea mala alcanza", func(t *testing.T) {
		req := validRequest()
		req.Lines = append(req.Lines, movement.Line{MaterialID: 102, Quantity: decimal.NewFromInt(-1)})
		_, err := ledger.Validate(req)
		assert.Equal(t, movement.KindInvalidQuantity, kindOf(t, err))
	})
}

// Una misma unidad física no puede aparecer dos veces en un pedido.
func TestValidate_UnidadRepetidaEnElPedido(t *testing.T) {
	req := validRequest()
	req.Lines = []movement.Line{
		{MaterialID: 200, SerialCode: "S-77", Quantity: decimal.NewFromInt(1)},
		{MaterialID: 200, SerialCode: "S-77", Quantity: decimal.NewFromInt(1)},
	}
	_, err := ledger.Validate(req)
	assert.Equal(t, movement.KindDuplicateSerializedUnit, kindOf(t, err))
}

func TestValidate_MismaSerieDeOtroMaterialNoEsDuplicado(t *testing.T) {
	req := validRequest()
	req.Lines = []movement.Line{
		{MaterialID: 200, SerialCode: "S-77", Quantity: decimal.NewFromInt(1)},
		{MaterialID: 201, SerialCode: "S-77", Quantity: decimal.NewFromInt(1)},
	}
	_, err := ledger.Validate(req)
	assert.NoError(t, err)
}

// El primer fallo gana: tipo desconocido pisa a la falta de líneas.
func TestValidate_PrimerFalloGana(t *testing.T) {
	req := movement.Request{TypeLabel: "PRESTAMO"}
	_, err := ledger.Validate(req)
	assert.Equal(t, movement.KindUnknownMovementType, kindOf(t, err))
}

// Regla de planteles del colaborador de cuadrillas: exactamente un jefe y sin
// personas repetidas. El commit de movimientos la asume ya cumplida.
func TestValidateRoster(t *testing.T) {
	ok := []entity.CrewMember{
		{PersonID: 1, Name: "Pérez", Role: entity.RoleCrewLead},
		{PersonID: 2, Name: "Gómez", Role: "OFICIAL"},
	}
	assert.NoError(t, ledger.ValidateRoster(ok))

	t.Run("dos jefes", func(t *testing.T) {
		roster := []entity.CrewMember{
			{PersonID: 1, Role: entity.RoleCrewLead},
			{PersonID: 2, Role: entity.RoleCrewLead},
		}
		err := ledger.ValidateRoster(roster)
		assert.Equal(t, movement.KindInvalidRoster, kindOf(t, err))
	})
	t.Run("sin jefe", func(t *testing.T) {
		roster := []entity.CrewMember{{PersonID: 1, Role: "OFICIAL"}}
		err := ledger.ValidateRoster(roster)
		assert.Equal(t, movement.KindInvalidRoster, kindOf(t, err))
	})
	t.Run("persona repetida", func(t *testing.T) {
		roster := []entity.CrewMember{
			{PersonID: 1, Role: entity.RoleCrewLead},
			{PersonID: 1, Role: "OFICIAL"},
		}
		err := ledger.ValidateRoster(roster)
		assert.Equal(t, movement.KindInvalidRoster, kindOf(t, err))
	})
}
