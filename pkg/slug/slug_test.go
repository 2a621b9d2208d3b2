package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/panol-app/bodega-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Artículos de Aseo":   "articulos-de-aseo",
		"Guía de despacho #3": "guia-de-despacho-3",
		"  Ñandú  ":           "nandu",
		"informe_2024.pdf":    "informe-2024-pdf",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "slug de %q", in)
	}
}
