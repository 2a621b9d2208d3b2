package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/productos.
type CreateProductRequest struct {
	Codigo       string          `json:"codigo" validate:"required,max=50"`
	Nombre       string          `json:"nombre" validate:"required,min=3,max=200"`
	Descripcion  string          `json:"descripcion" validate:"omitempty,max=1000"`
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid4"`
	ProveedorID  string          `json:"proveedor_id" validate:"omitempty,uuid4"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	StockMinimo  int64           `json:"stock_minimo" validate:"omitempty,min=0"`
	Ubicacion    string          `json:"ubicacion" validate:"omitempty,max=100"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
// El stock no se actualiza por aquí: solo vía movimientos.
type UpdateProductRequest struct {
	Nombre             string          `json:"nombre" validate:"required,min=3,max=200"`
	Descripcion        string          `json:"descripcion" validate:"omitempty,max=1000"`
	CategoriaID        string          `json:"categoria_id" validate:"required,uuid4"`
	ProveedorID        string          `json:"proveedor_id" validate:"omitempty,uuid4"`
	PrecioCompra       decimal.Decimal `json:"precio_compra"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"`
	StockMinimo        int64           `json:"stock_minimo" validate:"omitempty,min=0"`
	Ubicacion          string          `json:"ubicacion" validate:"omitempty,max=100"`
	Estado             string          `json:"estado" validate:"omitempty,oneof=activo inactivo descontinuado"`
	MotivoInactivacion string          `json:"motivo_inactivacion" validate:"omitempty,max=255"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	Codigo             string          `json:"codigo"`
	Nombre             string          `json:"nombre"`
	Descripcion        string          `json:"descripcion,omitempty"`
	CategoriaID        string          `json:"categoria_id"`
	ProveedorID        string          `json:"proveedor_id,omitempty"`
	PrecioCompra       decimal.Decimal `json:"precio_compra"`
	PrecioVenta        decimal.Decimal `json:"precio_venta"`
	Stock              int64           `json:"stock"`
	StockMinimo        int64           `json:"stock_minimo"`
	StockBajo          bool            `json:"stock_bajo"`
	ValorInventario    decimal.Decimal `json:"valor_inventario"`
	Ubicacion          string          `json:"ubicacion,omitempty"`
	Imagen             string          `json:"imagen,omitempty"`
	Estado             string          `json:"estado"`
	MotivoInactivacion string          `json:"motivo_inactivacion,omitempty"`
	FechaCreacion      time.Time       `json:"fecha_creacion"`
}

// ToProductResponse convierte la entidad a su representación JSON.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Codigo:             p.Codigo,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		CategoriaID:        p.CategoriaID,
		ProveedorID:        p.ProveedorID,
		PrecioCompra:       p.PrecioCompra,
		PrecioVenta:        p.PrecioVenta,
		Stock:              p.Stock,
		StockMinimo:        p.StockMinimo,
		StockBajo:          p.StockBajo(),
		ValorInventario:    p.ValorInventario(),
		Ubicacion:          p.Ubicacion,
		Imagen:             p.Imagen,
		Estado:             p.Estado,
		MotivoInactivacion: p.MotivoInactivacion,
		FechaCreacion:      p.CreatedAt,
	}
}
