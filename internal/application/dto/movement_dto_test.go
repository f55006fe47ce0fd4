package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EduardoLubo/materiales-api/internal/application/dto"
)

// Los identificadores llegan como número o como string desde formularios; el
// blanco normaliza a "no provisto", que no es lo mismo que cero.
func TestRef_Coercion(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
		value int64
	}{
		{"numero", `{"v": 42}`, true, 42},
		{"string", `{"v": "42"}`, true, 42},
		{"cero", `{"v": 0}`, true, 0},
		{"null", `{"v": null}`, false, 0},
		{"blanco", `{"v": ""}`, false, 0},
		{"ausente", `{}`, false, 0},
		{"espacios", `{"v": "  7 "}`, true, 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out struct {
				V dto.Ref `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(c.in), &out))
			assert.Equal(t, c.valid, out.V.Valid)
			if c.valid {
				assert.Equal(t, c.value, out.V.Value)
			} else {
				assert.Nil(t, out.V.Ptr())
			}
		})
	}
}

func TestRef_NoNumerico(t *testing.T) {
	var out struct {
		V dto.Ref `json:"v"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"v": "abc"}`), &out))
}

func TestRef_Marshal(t *testing.T) {
	b, err := json.Marshal(dto.Ref{Value: 9, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "9", string(b))

	b, err = json.Marshal(dto.Ref{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
