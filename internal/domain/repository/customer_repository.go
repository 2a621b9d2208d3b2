package repository

import (
	"context"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Buscar       string // rut, nombre, apellido o email (ILIKE)
	Departamento string
	Estado       string
	Limit        int
	Offset       int
}

// CustomerRepository define el puerto de persistencia para clientes internos.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByRUT(ctx context.Context, rut string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, int, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
