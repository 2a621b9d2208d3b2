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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productCols = `id, codigo, nombre, descripcion, categoria_id, proveedor_id,
	precio_compra, precio_venta, stock, stock_minimo, ubicacion, imagen,
	estado, motivo_inactivacion, fecha_creacion, fecha_actualizacion, fecha_eliminacion`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (id, codigo, nombre, descripcion, categoria_id, proveedor_id,
			precio_compra, precio_venta, stock, stock_minimo, ubicacion, imagen,
			estado, motivo_inactivacion, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.CategoriaID, nullable(p.ProveedorID),
		p.PrecioCompra, p.PrecioVenta, p.Stock, p.StockMinimo, p.Ubicacion, p.Imagen,
		p.Estado, p.MotivoInactivacion, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto no eliminado por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productCols + ` FROM productos WHERE id = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, id)
}

// GetByCodigo obtiene un producto no eliminado por código.
func (r *ProductRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Product, error) {
	query := `SELECT ` + productCols + ` FROM productos WHERE codigo = $1 AND fecha_eliminacion IS NULL`
	return r.getOne(ctx, query, codigo)
}

// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE). Solo
// tiene sentido dentro de una transacción del TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productCols + ` FROM productos WHERE id = $1 AND fecha_eliminacion IS NULL FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros. Código y stock no se tocan por aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, categoria_id = $4, proveedor_id = $5,
			precio_compra = $6, precio_venta = $7, stock_minimo = $8, ubicacion = $9, imagen = $10,
			estado = $11, motivo_inactivacion = $12, fecha_actualizacion = $13
		WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.CategoriaID, nullable(p.ProveedorID),
		p.PrecioCompra, p.PrecioVenta, p.StockMinimo, p.Ubicacion, p.Imagen,
		p.Estado, p.MotivoInactivacion, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock escribe el stock derivado. Uso exclusivo del motor de
// movimientos, dentro de la transacción que creó el movimiento.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	query := `UPDATE productos SET stock = $2, fecha_actualizacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos no eliminados con filtros y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := " WHERE fecha_eliminacion IS NULL"
	args := []any{}
	pos := 1
	if f.Buscar != "" {
		where += fmt.Sprintf(" AND (codigo ILIKE $%d OR nombre ILIKE $%d OR descripcion ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+f.Buscar+"%")
		pos++
	}
	if f.CategoriaID != "" {
		where += fmt.Sprintf(" AND categoria_id = $%d", pos)
		args = append(args, f.CategoriaID)
		pos++
	}
	if f.ProveedorID != "" {
		where += fmt.Sprintf(" AND proveedor_id = $%d", pos)
		args = append(args, f.ProveedorID)
		pos++
	}
	if f.Estado != "" {
		where += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, f.Estado)
		pos++
	}
	if f.StockBajo {
		where += " AND stock <= stock_minimo"
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM productos"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count productos: %w", err)
	}

	query := `SELECT ` + productCols + ` FROM productos` + where +
		fmt.Sprintf(" ORDER BY nombre LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el producto como eliminado.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE productos SET fecha_eliminacion = now() WHERE id = $1 AND fecha_eliminacion IS NULL`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete borra el producto de verdad (solo sin movimientos asociados).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var proveedorID *string
	var eliminado *time.Time
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.CategoriaID, &proveedorID,
		&p.PrecioCompra, &p.PrecioVenta, &p.Stock, &p.StockMinimo, &p.Ubicacion, &p.Imagen,
		&p.Estado, &p.MotivoInactivacion, &p.CreatedAt, &p.UpdatedAt, &eliminado,
	)
	if err != nil {
		return nil, err
	}
	p.ProveedorID = deref(proveedorID)
	p.DeletedAt = eliminado
	return &p, nil
}
