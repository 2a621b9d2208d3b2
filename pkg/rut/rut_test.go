package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/panol-app/bodega-api/pkg/rut"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"11111111-1", true},  // dv numérico
		{"12345678-5", true},  // dv numérico
		{"12111125-K", true},  // dv K (resto 1)
		{"12111125-k", true},  // minúscula se normaliza
		{"12.345.678-5", true}, // con puntos
		{"12111133-0", true},  // dv 0 (resto 0)
		{"12345678-9", false}, // dv incorrecto
		{"11111111-K", false},
		{"1234567", false},   // sin dv
		{"abcdefgh-1", false}, // no numérico
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, rut.Validate(tc.in), "rut %q", tc.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "123456785", rut.Normalize("12.345.678-5"))
	assert.Equal(t, "12111125K", rut.Normalize("12111125-k"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "12.111.125-K", rut.Format("12111125-k"))
	assert.Equal(t, "1.111.111-4", rut.Format("11111114"))
}

// Normalizar y volver a formatear no altera el RUT.
func TestFormatRoundTrip(t *testing.T) {
	formatted := rut.Format("12.345.678-5")
	assert.Equal(t, formatted, rut.Format(rut.Normalize(formatted)))
}
