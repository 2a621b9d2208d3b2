package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Product.
const (
	ProductActivo        = "activo"
	ProductInactivo      = "inactivo"
	ProductDescontinuado = "descontinuado"
)

// Product representa un producto del pañol. Stock es un campo derivado:
// la suma de los deltas de todos los movimientos completados en orden de
// creación. Solo el motor de movimientos lo escribe, siempre dentro de
// una transacción con la fila bloqueada.
type Product struct {
	ID                 string
	Codigo             string // código único
	Nombre             string
	Descripcion        string
	CategoriaID        string
	ProveedorID        string // vacío si no tiene proveedor habitual
	PrecioCompra       decimal.Decimal
	PrecioVenta        decimal.Decimal
	Stock              int64 // siempre >= 0
	StockMinimo        int64
	Ubicacion          string
	Imagen             string
	Estado             string // activo, inactivo, descontinuado
	MotivoInactivacion string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Activo indica si el producto admite movimientos.
func (p *Product) Activo() bool { return p.Estado == ProductActivo }

// StockBajo indica si el stock está en o bajo el mínimo configurado.
func (p *Product) StockBajo() bool { return p.Stock <= p.StockMinimo }

// ValorInventario devuelve stock × precio de compra.
func (p *Product) ValorInventario() decimal.Decimal {
	return decimal.NewFromInt(p.Stock).Mul(p.PrecioCompra)
}
