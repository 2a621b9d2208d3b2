package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categorias (id, nombre, descripcion, estado, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Estado, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría no eliminada por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `
		SELECT id, nombre, descripcion, estado, fecha_creacion, fecha_actualizacion, fecha_eliminacion
		FROM categorias WHERE id = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, id)
}

// GetByNombre obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Category, error) {
	query := `
		SELECT id, nombre, descripcion, estado, fecha_creacion, fecha_actualizacion, fecha_eliminacion
		FROM categorias WHERE nombre = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, nombre)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var c entity.Category
	var eliminado *time.Time
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Nombre, &c.Descripcion, &c.Estado, &c.CreatedAt, &c.UpdatedAt, &eliminado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	c.DeletedAt = eliminado
	return &c, nil
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categorias SET nombre = $2, descripcion = $3, estado = $4, fecha_actualizacion = $5
		WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Estado, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías no eliminadas con paginación.
func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categorias WHERE fecha_eliminacion IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categorias: %w", err)
	}

	query := `
		SELECT id, nombre, descripcion, estado, fecha_creacion, fecha_actualizacion, fecha_eliminacion
		FROM categorias WHERE fecha_eliminacion IS NULL
		ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var eliminado *time.Time
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Estado, &c.CreatedAt, &c.UpdatedAt, &eliminado); err != nil {
			return nil, 0, fmt.Errorf("scan categoria: %w", err)
		}
		c.DeletedAt = eliminado
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// CountProducts cuenta los productos no eliminados de la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, id string) (int64, error) {
	var n int64
	query := `SELECT count(*) FROM productos WHERE categoria_id = $1 AND fecha_eliminacion IS NULL`
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos de categoria: %w", err)
	}
	return n, nil
}

// SoftDelete marca la categoría como eliminada.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE categorias SET fecha_eliminacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete categoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la categoría de verdad (solo sin productos asociados).
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
