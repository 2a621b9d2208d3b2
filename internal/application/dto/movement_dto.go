package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movimientos.
// cantidad: para ajuste es el stock absoluto a fijar; para el resto, unidades.
type RegisterMovementRequest struct {
	Tipo            string          `json:"tipo" form:"tipo" validate:"required,oneof=entrada salida ajuste devolucion"`
	ProductoID      string          `json:"producto_id" form:"producto_id" validate:"required,uuid4"`
	ClienteID       string          `json:"cliente_id" form:"cliente_id" validate:"omitempty,uuid4"`
	ProveedorID     string          `json:"proveedor_id" form:"proveedor_id" validate:"omitempty,uuid4"`
	Cantidad        int64           `json:"cantidad" form:"cantidad" validate:"required,min=1"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario" form:"precio_unitario"`
	NumeroDocumento string          `json:"numero_documento" form:"numero_documento" validate:"omitempty,max=50"`
	Motivo          string          `json:"motivo" form:"motivo" validate:"omitempty,max=200"`
}

// VoidMovementRequest body para PATCH /api/movimientos/:id/anular.
type VoidMovementRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=200"`
}

// MovementResponse representación JSON de un movimiento.
type MovementResponse struct {
	ID              string          `json:"id"`
	Tipo            string          `json:"tipo"`
	ProductoID      string          `json:"producto_id"`
	UsuarioID       string          `json:"usuario_id"`
	ClienteID       string          `json:"cliente_id,omitempty"`
	ProveedorID     string          `json:"proveedor_id,omitempty"`
	Cantidad        int64           `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	Total           decimal.Decimal `json:"total"`
	NumeroDocumento string          `json:"numero_documento"`
	ArchivoAdjunto  string          `json:"archivo_adjunto,omitempty"`
	Motivo          string          `json:"motivo,omitempty"`
	StockAnterior   int64           `json:"stock_anterior"`
	StockNuevo      int64           `json:"stock_nuevo"`
	Estado          string          `json:"estado"`
	EsAnulable      bool            `json:"es_anulable"`
	FechaCreacion   time.Time       `json:"fecha_creacion"`
}

// VoidMovementResponse respuesta de la anulación.
type VoidMovementResponse struct {
	MovimientoAnulado      MovementResponse `json:"movimiento_anulado"`
	MovimientoCompensacion MovementResponse `json:"movimiento_compensacion"`
}

// KindStatsResponse estadísticas de un tipo de movimiento.
type KindStatsResponse struct {
	Movimientos int64           `json:"movimientos"`
	Productos   int64           `json:"productos"`
	Valor       decimal.Decimal `json:"valor"`
}

// ToMovementResponse convierte la entidad a su representación JSON.
func ToMovementResponse(m *entity.Movement, now time.Time) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		Tipo:            m.Tipo,
		ProductoID:      m.ProductoID,
		UsuarioID:       m.UsuarioID,
		ClienteID:       m.ClienteID,
		ProveedorID:     m.ProveedorID,
		Cantidad:        m.Cantidad,
		PrecioUnitario:  m.PrecioUnitario,
		Total:           m.Total,
		NumeroDocumento: m.NumeroDocumento,
		ArchivoAdjunto:  m.ArchivoAdjunto,
		Motivo:          m.Motivo,
		StockAnterior:   m.StockAnterior,
		StockNuevo:      m.StockNuevo,
		Estado:          m.Estado,
		EsAnulable:      m.EsAnulable(now),
		FechaCreacion:   m.CreatedAt,
	}
}
