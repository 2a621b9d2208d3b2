// Package docnum genera números de documento para movimientos de inventario.
package docnum

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

var prefijos = map[string]string{
	entity.MovEntrada:    "ENT",
	entity.MovSalida:     "SAL",
	entity.MovAjuste:     "AJU",
	entity.MovDevolucion: "DEV",
}

// VoidPrefix antepuesto al documento original en movimientos de compensación.
const VoidPrefix = "ANUL-"

// Generate construye un número de documento `PREFIJO-tttttt-rrr` con los
// últimos 6 dígitos del timestamp en milisegundos y 3 dígitos aleatorios.
// La probabilidad de colisión se asume despreciable; no se reintenta.
func Generate(tipo string, t time.Time) string {
	prefijo, ok := prefijos[tipo]
	if !ok {
		prefijo = "MOV"
	}
	ms := fmt.Sprintf("%d", t.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return fmt.Sprintf("%s-%s-%03d", prefijo, ms, rand.Intn(1000))
}
