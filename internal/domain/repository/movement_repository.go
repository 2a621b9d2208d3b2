package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	Tipo        string
	ProductoID  string
	ClienteID   string
	ProveedorID string
	Estado      string
	Desde       *time.Time
	Hasta       *time.Time
	Limit       int
	Offset      int
}

// KindStats agregados por tipo de movimiento para un rango de fechas.
type KindStats struct {
	Tipo             string
	TotalMovimientos int64
	TotalProductos   int64           // suma de cantidades
	TotalValor       decimal.Decimal // suma de totales
}

// MovementRepository define el puerto de persistencia para movimientos.
// Las filas son append-only: no exponemos Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
	// MarkVoided transiciona el movimiento a anulado y persiste el motivo.
	MarkVoided(ctx context.Context, id, motivo string) error
	// MonthlyConsumption suma el total de las salidas completadas del cliente
	// con fecha_creacion >= desde. Alimenta al guardián de límite mensual.
	MonthlyConsumption(ctx context.Context, clienteID string, desde time.Time) (decimal.Decimal, error)
	// StatsByKind agrega conteo, cantidades y valores por tipo sobre
	// movimientos completados del rango.
	StatsByKind(ctx context.Context, desde, hasta time.Time) ([]KindStats, error)
	CountByProduct(ctx context.Context, productoID string) (int64, error)
	CountByCustomer(ctx context.Context, clienteID string) (int64, error)
}
