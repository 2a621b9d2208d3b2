package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovEntrada    = "entrada"    // ingreso desde proveedor
	MovSalida     = "salida"     // egreso hacia cliente/departamento
	MovAjuste     = "ajuste"     // corrección absoluta de stock (recuento)
	MovDevolucion = "devolucion" // reingreso que revierte una salida previa
)

// Estados de Movement. La única transición legal es completado → anulado.
const (
	MovCompletado = "completado"
	MovAnulado    = "anulado"
)

// Movement representa una transacción de stock. Las filas son append-only:
// nunca se borran; anular un movimiento crea uno de compensación y marca el
// original como anulado.
type Movement struct {
	ID              string
	Tipo            string
	ProductoID      string
	UsuarioID       string
	ClienteID       string // requerido para salidas a cliente
	ProveedorID     string // esperado en entradas
	Cantidad        int64  // >= 1; para ajuste es el stock absoluto a fijar
	PrecioUnitario  decimal.Decimal
	Total           decimal.Decimal // Cantidad × PrecioUnitario
	NumeroDocumento string
	ArchivoAdjunto  string
	Motivo          string
	StockAnterior   int64 // snapshot al momento de confirmar
	StockNuevo      int64
	Estado          string // completado, anulado
	CreatedAt       time.Time
}

// Completado indica si el movimiento sigue vigente.
func (m *Movement) Completado() bool { return m.Estado == MovCompletado }

// EsAnulable es un indicador para la UI: completado y con menos de 24 horas.
// El servidor no restringe la anulación por antigüedad.
func (m *Movement) EsAnulable(now time.Time) bool {
	return m.Estado == MovCompletado && now.Sub(m.CreatedAt) < 24*time.Hour
}

// ValidKind reporta si tipo es uno de los cuatro tipos de movimiento.
func ValidKind(tipo string) bool {
	switch tipo {
	case MovEntrada, MovSalida, MovAjuste, MovDevolucion:
		return true
	}
	return false
}
