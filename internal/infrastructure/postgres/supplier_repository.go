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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierCols = `id, rut, razon_social, contacto, email, telefono, direccion,
	estado, fecha_creacion, fecha_actualizacion, fecha_eliminacion`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor nuevo.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO proveedores (id, rut, razon_social, contacto, email, telefono, direccion,
			estado, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RUT, s.RazonSocial, s.Contacto, s.Email, s.Telefono, s.Direccion,
		s.Estado, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor no eliminado por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierCols + ` FROM proveedores WHERE id = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, id)
}

// GetByRUT obtiene un proveedor no eliminado por RUT normalizado.
func (r *SupplierRepo) GetByRUT(ctx context.Context, rut string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierCols + ` FROM proveedores WHERE rut = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, rut)
}

func (r *SupplierRepo) getOne(ctx context.Context, query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	var eliminado *time.Time
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.RUT, &s.RazonSocial, &s.Contacto, &s.Email, &s.Telefono, &s.Direccion,
		&s.Estado, &s.CreatedAt, &s.UpdatedAt, &eliminado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	s.DeletedAt = eliminado
	return &s, nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE proveedores SET razon_social = $2, contacto = $3, email = $4, telefono = $5,
			direccion = $6, estado = $7, fecha_actualizacion = $8
		WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.RazonSocial, s.Contacto, s.Email, s.Telefono, s.Direccion, s.Estado, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// List lista proveedores no eliminados con búsqueda y paginación.
func (r *SupplierRepo) List(ctx context.Context, buscar string, limit, offset int) ([]*entity.Supplier, int, error) {
	where := " WHERE fecha_eliminacion IS NULL"
	args := []any{}
	pos := 1
	if buscar != "" {
		where += fmt.Sprintf(" AND (rut ILIKE $%d OR razon_social ILIKE $%d OR contacto ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+buscar+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM proveedores"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count proveedores: %w", err)
	}

	query := `SELECT ` + supplierCols + ` FROM proveedores` + where +
		fmt.Sprintf(" ORDER BY razon_social LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var eliminado *time.Time
		if err := rows.Scan(&s.ID, &s.RUT, &s.RazonSocial, &s.Contacto, &s.Email, &s.Telefono,
			&s.Direccion, &s.Estado, &s.CreatedAt, &s.UpdatedAt, &eliminado); err != nil {
			return nil, 0, fmt.Errorf("scan proveedor: %w", err)
		}
		s.DeletedAt = eliminado
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el proveedor como eliminado.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE proveedores SET fecha_eliminacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// Delete borra el proveedor de verdad.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
