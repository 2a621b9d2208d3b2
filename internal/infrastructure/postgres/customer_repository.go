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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerCols = `id, rut, nombre, apellido, email, telefono, direccion, comuna,
	ciudad, region, departamento, cargo, limite_mensual, estado, motivo_inactivacion,
	fecha_creacion, fecha_actualizacion, fecha_eliminacion`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL
// (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO clientes (id, rut, nombre, apellido, email, telefono, direccion, comuna,
			ciudad, region, departamento, cargo, limite_mensual, estado, motivo_inactivacion,
			fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RUT, c.Nombre, c.Apellido, c.Email, c.Telefono, c.Direccion, c.Comuna,
		c.Ciudad, c.Region, c.Departamento, c.Cargo, c.LimiteMensual, c.Estado, c.MotivoInactivacion,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente no eliminado por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerCols + ` FROM clientes WHERE id = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, id)
}

// GetByRUT obtiene un cliente no eliminado por RUT normalizado.
func (r *CustomerRepo) GetByRUT(ctx context.Context, rut string) (*entity.Customer, error) {
	query := `SELECT ` + customerCols + ` FROM clientes WHERE rut = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, rut)
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE clientes SET nombre = $2, apellido = $3, email = $4, telefono = $5,
			direccion = $6, comuna = $7, ciudad = $8, region = $9, departamento = $10,
			cargo = $11, limite_mensual = $12, estado = $13, motivo_inactivacion = $14,
			fecha_actualizacion = $15
		WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono,
		c.Direccion, c.Comuna, c.Ciudad, c.Region, c.Departamento,
		c.Cargo, c.LimiteMensual, c.Estado, c.MotivoInactivacion,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// List lista clientes no eliminados con filtros y paginación.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	where := " WHERE fecha_eliminacion IS NULL"
	args := []any{}
	pos := 1
	if f.Buscar != "" {
		where += fmt.Sprintf(" AND (rut ILIKE $%d OR nombre ILIKE $%d OR apellido ILIKE $%d OR email ILIKE $%d)", pos, pos, pos, pos)
		args = append(args, "%"+f.Buscar+"%")
		pos++
	}
	if f.Departamento != "" {
		where += fmt.Sprintf(" AND departamento = $%d", pos)
		args = append(args, f.Departamento)
		pos++
	}
	if f.Estado != "" {
		where += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, f.Estado)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM clientes"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	query := `SELECT ` + customerCols + ` FROM clientes` + where +
		fmt.Sprintf(" ORDER BY apellido, nombre LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el cliente como eliminado.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE clientes SET fecha_eliminacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Delete borra el cliente de verdad (solo sin movimientos asociados).
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var eliminado *time.Time
	err := row.Scan(
		&c.ID, &c.RUT, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.Direccion, &c.Comuna,
		&c.Ciudad, &c.Region, &c.Departamento, &c.Cargo, &c.LimiteMensual, &c.Estado, &c.MotivoInactivacion,
		&c.CreatedAt, &c.UpdatedAt, &eliminado,
	)
	if err != nil {
		return nil, err
	}
	c.DeletedAt = eliminado
	return &c, nil
}
