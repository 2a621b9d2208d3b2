package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementCols = `id, tipo, producto_id, usuario_id, cliente_id, proveedor_id,
	cantidad, precio_unitario, total, numero_documento, archivo_adjunto, motivo,
	stock_anterior, stock_nuevo, estado, fecha_creacion`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). Las filas son append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movimientos (id, tipo, producto_id, usuario_id, cliente_id, proveedor_id,
			cantidad, precio_unitario, total, numero_documento, archivo_adjunto, motivo,
			stock_anterior, stock_nuevo, estado, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Tipo, m.ProductoID, m.UsuarioID, nullable(m.ClienteID), nullable(m.ProveedorID),
		m.Cantidad, m.PrecioUnitario, m.Total, m.NumeroDocumento, m.ArchivoAdjunto, m.Motivo,
		m.StockAnterior, m.StockNuevo, m.Estado, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementCols + ` FROM movimientos WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// List lista movimientos con filtros, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	add := func(cond string, val any) {
		where += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if f.Tipo != "" {
		add("tipo = $%d", f.Tipo)
	}
	if f.ProductoID != "" {
		add("producto_id = $%d", f.ProductoID)
	}
	if f.ClienteID != "" {
		add("cliente_id = $%d", f.ClienteID)
	}
	if f.ProveedorID != "" {
		add("proveedor_id = $%d", f.ProveedorID)
	}
	if f.Estado != "" {
		add("estado = $%d", f.Estado)
	}
	if f.Desde != nil {
		add("fecha_creacion >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		add("fecha_creacion <= $%d", *f.Hasta)
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM movimientos"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movimientos: %w", err)
	}

	query := `SELECT ` + movementCols + ` FROM movimientos` + where +
		fmt.Sprintf(" ORDER BY fecha_creacion DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// MarkVoided transiciona completado -> anulado y persiste el motivo. Si el
// movimiento ya está anulado no afecta filas y devuelve ErrMovementVoided.
func (r *MovementRepo) MarkVoided(ctx context.Context, id, motivo string) error {
	query := `UPDATE movimientos SET estado = $2, motivo = $3 WHERE id = $1 AND estado = $4`
	cmd, err := r.q.Exec(ctx, query, id, entity.MovAnulado, motivo, entity.MovCompletado)
	if err != nil {
		return fmt.Errorf("anular movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementVoided
	}
	return nil
}

// MonthlyConsumption suma el total de las salidas completadas del cliente
// desde la fecha dada.
func (r *MovementRepo) MonthlyConsumption(ctx context.Context, clienteID string, desde time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM movimientos
		WHERE cliente_id = $1 AND tipo = $2 AND estado = $3 AND fecha_creacion >= $4`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, clienteID, entity.MovSalida, entity.MovCompletado, desde).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("consumo mensual: %w", err)
	}
	return total, nil
}

// StatsByKind agrega conteo, cantidades y valores por tipo sobre movimientos
// completados del rango.
func (r *MovementRepo) StatsByKind(ctx context.Context, desde, hasta time.Time) ([]repository.KindStats, error) {
	query := `
		SELECT tipo, count(*), COALESCE(SUM(cantidad), 0), COALESCE(SUM(total), 0)
		FROM movimientos
		WHERE estado = $1 AND fecha_creacion >= $2 AND fecha_creacion <= $3
		GROUP BY tipo`
	rows, err := r.q.Query(ctx, query, entity.MovCompletado, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("stats movimientos: %w", err)
	}
	defer rows.Close()

	var stats []repository.KindStats
	for rows.Next() {
		var s repository.KindStats
		if err := rows.Scan(&s.Tipo, &s.TotalMovimientos, &s.TotalProductos, &s.TotalValor); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountByProduct cuenta movimientos de un producto (completados y anulados).
func (r *MovementRepo) CountByProduct(ctx context.Context, productoID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM movimientos WHERE producto_id = $1`, productoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count por producto: %w", err)
	}
	return n, nil
}

// CountByCustomer cuenta movimientos de un cliente.
func (r *MovementRepo) CountByCustomer(ctx context.Context, clienteID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM movimientos WHERE cliente_id = $1`, clienteID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count por cliente: %w", err)
	}
	return n, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var clienteID, proveedorID *string
	err := row.Scan(
		&m.ID, &m.Tipo, &m.ProductoID, &m.UsuarioID, &clienteID, &proveedorID,
		&m.Cantidad, &m.PrecioUnitario, &m.Total, &m.NumeroDocumento, &m.ArchivoAdjunto, &m.Motivo,
		&m.StockAnterior, &m.StockNuevo, &m.Estado, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ClienteID = deref(clienteID)
	m.ProveedorID = deref(proveedorID)
	return &m, nil
}
