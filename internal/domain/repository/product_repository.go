package repository

import (
	"context"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Buscar      string // codigo, nombre o descripción (ILIKE)
	CategoriaID string
	ProveedorID string
	Estado      string
	StockBajo   bool // solo productos con stock <= stock_minimo
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el stock derivado. Uso exclusivo del motor de
	// movimientos, dentro de la transacción que creó el movimiento.
	UpdateStock(ctx context.Context, id string, stock int64) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
