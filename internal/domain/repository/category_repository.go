package repository

import (
	"context"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error)
	// CountProducts cuenta los productos no eliminados de la categoría
	// (una categoría con productos no se elimina).
	CountProducts(ctx context.Context, id string) (int64, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
