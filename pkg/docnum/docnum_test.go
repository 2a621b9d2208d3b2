package docnum_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/pkg/docnum"
)

func TestGenerate_FormatoPorTipo(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	cases := map[string]string{
		entity.MovEntrada:    `^ENT-\d{6}-\d{3}$`,
		entity.MovSalida:     `^SAL-\d{6}-\d{3}$`,
		entity.MovAjuste:     `^AJU-\d{6}-\d{3}$`,
		entity.MovDevolucion: `^DEV-\d{6}-\d{3}$`,
	}
	for tipo, pattern := range cases {
		got := docnum.Generate(tipo, now)
		assert.Regexp(t, regexp.MustCompile(pattern), got, "tipo %s", tipo)
	}
}

func TestGenerate_TipoDesconocidoUsaPrefijoGenerico(t *testing.T) {
	got := docnum.Generate("otro", time.Now())
	assert.Regexp(t, `^MOV-\d{6}-\d{3}$`, got)
}

func TestGenerate_SufijoDependeDelTimestamp(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(17 * time.Second)
	d1 := docnum.Generate(entity.MovEntrada, t1)
	d2 := docnum.Generate(entity.MovEntrada, t2)
	// mismos prefijos, segmento temporal distinto
	assert.NotEqual(t, d1[4:10], d2[4:10])
}
