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

var _ repository.UserRepository = (*UserRepo)(nil)

const userCols = `id, rut, nombre, apellido, email, password_hash, rol, estado,
	fecha_creacion, fecha_actualizacion, fecha_eliminacion`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (id, rut, nombre, apellido, email, password_hash, rol, estado,
			fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.RUT, u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.Rol, u.Estado,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario no eliminado por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM usuarios WHERE id = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, id)
}

// FindByEmail obtiene un usuario no eliminado por email (para login).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userCols + ` FROM usuarios WHERE email = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	var eliminado *time.Time
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.RUT, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado,
		&u.CreatedAt, &u.UpdatedAt, &eliminado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	u.DeletedAt = eliminado
	return &u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET nombre = $2, apellido = $3, email = $4, password_hash = $5,
			rol = $6, estado = $7, fecha_actualizacion = $8
		WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		u.ID, u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.Rol, u.Estado, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios no eliminados con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM usuarios WHERE fecha_eliminacion IS NULL`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}

	query := `SELECT ` + userCols + ` FROM usuarios WHERE fecha_eliminacion IS NULL
		ORDER BY apellido, nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var eliminado *time.Time
		if err := rows.Scan(&u.ID, &u.RUT, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash,
			&u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt, &eliminado); err != nil {
			return nil, 0, fmt.Errorf("scan usuario: %w", err)
		}
		u.DeletedAt = eliminado
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// SoftDelete desactiva el usuario y lo marca como eliminado.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE usuarios SET estado = 'inactivo', fecha_eliminacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
