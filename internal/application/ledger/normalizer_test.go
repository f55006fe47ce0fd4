package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardoLubo/materiales-api/internal/application/dto"
	"github.com/EduardoLubo/materiales-api/internal/application/ledger"
)

func ref(v int64) dto.Ref { return dto.Ref{Value: v, Valid: true} }

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Las líneas a granel del mismo material se fusionan sumando; cada línea
// serializada queda aparte con cantidad 1.
func TestNormalize_FusionaGranelYConservaSeries(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type: "ENVIO_A_OBRA",
		Lines: []dto.CreateMovementLineRequest{
			{MaterialID: ref(1), Quantity: qty("3")},
			{MaterialID: ref(1), Quantity: qty("2")},
			{MaterialID: ref(2), SerialCode: "A", Quantity: qty("1")},
			{MaterialID: ref(2), SerialCode: "B", Quantity: qty("1")},
		},
	}

	out := ledger.Normalize(in, 10, 20)
	require.Len(t, out.Lines, 3)

	assert.Equal(t, int64(1), out.Lines[0].MaterialID)
	assert.True(t, out.Lines[0].Quantity.Equal(qty("5")), "3 + 2 = 5")
	assert.False(t, out.Lines[0].Serialized())

	assert.Equal(t, "A", out.Lines[1].SerialCode)
	assert.True(t, out.Lines[1].Quantity.Equal(qty("1")))
	assert.Equal(t, "B", out.Lines[2].SerialCode)

	assert.Equal(t, int64(10), out.ClientID)
	assert.Equal(t, int64(20), out.UserID)
}

func TestNormalize_DescartaLineasVacias(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type: "CONSUMO_EN_OBRA",
		Lines: []dto.CreateMovementLineRequest{
			{Quantity: qty("5")},                          // sin material
			{MaterialID: ref(1), Quantity: qty("0")},      // cantidad cero
			{MaterialID: ref(1), Quantity: qty("-2")},     // negativa
			{MaterialID: ref(1), Quantity: qty("1.5")},    // válida
		},
	}
	out := ledger.Normalize(in, 1, 1)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Quantity.Equal(qty("1.5")))
}

// El redondeo es a 2 decimales con redondeo estándar, no truncado.
func TestNormalize_RedondeaADosDecimales(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type: "CONSUMO_EN_OBRA",
		Lines: []dto.CreateMovementLineRequest{
			{MaterialID: ref(1), Quantity: qty("1.005")},
			{MaterialID: ref(1), Quantity: qty("2.001")},
		},
	}
	out := ledger.Normalize(in, 1, 1)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "3.01", out.Lines[0].Quantity.String(), "3.006 redondea hacia arriba")
}

// Una cantidad positiva puede quedar en cero tras el redondeo (0.004 -> 0.00);
// esa línea se descarta igual que una en cero de entrada.
func TestNormalize_DescartaLineasQueRedondeanACero(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type: "CONSUMO_EN_OBRA",
		Lines: []dto.CreateMovementLineRequest{
			{MaterialID: ref(1), Quantity: qty("0.004")},
			{MaterialID: ref(2), Quantity: qty("1")},
		},
	}
	out := ledger.Normalize(in, 1, 1)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(2), out.Lines[0].MaterialID)
}

func TestNormalize_IdentificadoresNoProvistos(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type:             "CONSUMO_EN_OBRA",
		OriginLocationID: ref(7),
		// DestinationLocationID y cuadrillas ausentes
	}
	out := ledger.Normalize(in, 1, 1)
	require.NotNil(t, out.OriginLocationID)
	assert.Equal(t, int64(7), *out.OriginLocationID)
	assert.Nil(t, out.DestinationLocationID)
	assert.Nil(t, out.OriginCrewID)
}

func TestNormalize_OrdenaGranelPorMaterial(t *testing.T) {
	in := dto.CreateMovementRequest{
		Type: "CONSUMO_EN_OBRA",
		Lines: []dto.CreateMovementLineRequest{
			{MaterialID: ref(9), Quantity: qty("1")},
			{MaterialID: ref(3), Quantity: qty("1")},
			{MaterialID: ref(5), Quantity: qty("1")},
		},
	}
	out := ledger.Normalize(in, 1, 1)
	require.Len(t, out.Lines, 3)
	assert.Equal(t, int64(3), out.Lines[0].MaterialID)
	assert.Equal(t, int64(5), out.Lines[1].MaterialID)
	assert.Equal(t, int64(9), out.Lines[2].MaterialID)
}

func TestCanonicalSerial(t *testing.T) {
	assert.Equal(t, "ABC-123", ledger.CanonicalSerial("  abc-123 "))
	assert.Equal(t, "", ledger.CanonicalSerial("   "))
}
