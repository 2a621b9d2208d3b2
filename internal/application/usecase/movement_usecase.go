package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de
// movimientos. El registro y la anulación viven en application/ledger.
type MovementQueryUseCase struct {
	repo     repository.MovementRepository
	notifier ledger.Notifier
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository, notifier ledger.Notifier) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo, notifier: notifier}
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	resp := dto.ToMovementResponse(mov, time.Now())
	return &resp, nil
}

// List lista movimientos con filtros y paginación, más recientes primero.
func (uc *MovementQueryUseCase) List(ctx context.Context, f repository.MovementFilter) ([]dto.MovementResponse, dto.PageResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	now := time.Now()
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m, now))
	}
	return items, dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}, nil
}

// Stats agrega movimientos completados por tipo en el rango dado. Sin rango
// se usan los últimos 30 días. Todos los tipos aparecen siempre, en cero si
// no hubo movimientos.
func (uc *MovementQueryUseCase) Stats(ctx context.Context, desde, hasta *time.Time) (map[string]dto.KindStatsResponse, error) {
	h := time.Now()
	if hasta != nil {
		h = *hasta
	}
	d := h.AddDate(0, 0, -30)
	if desde != nil {
		d = *desde
	}
	if d.After(h) {
		return nil, domain.ErrInvalidInput
	}

	stats, err := uc.repo.StatsByKind(ctx, d, h)
	if err != nil {
		return nil, err
	}
	return kindStatsMap(stats), nil
}

// ReporteDiario agrega los movimientos de hoy por tipo y despacha el resumen
// por correo al administrador. El envío es parte de la operación: si falla,
// la request falla.
func (uc *MovementQueryUseCase) ReporteDiario(ctx context.Context) (map[string]dto.KindStatsResponse, error) {
	ahora := time.Now()
	desde := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())

	stats, err := uc.repo.StatsByKind(ctx, desde, ahora)
	if err != nil {
		return nil, err
	}
	if err := uc.notifier.ReporteDiario(ctx, ahora, stats); err != nil {
		return nil, err
	}
	return kindStatsMap(stats), nil
}

// kindStatsMap vuelca los agregados a la respuesta JSON. Todos los tipos
// aparecen siempre, en cero si no hubo movimientos.
func kindStatsMap(stats []repository.KindStats) map[string]dto.KindStatsResponse {
	out := map[string]dto.KindStatsResponse{
		entity.MovEntrada:    {Valor: decimal.Zero},
		entity.MovSalida:     {Valor: decimal.Zero},
		entity.MovAjuste:     {Valor: decimal.Zero},
		entity.MovDevolucion: {Valor: decimal.Zero},
	}
	for _, s := range stats {
		out[s.Tipo] = dto.KindStatsResponse{
			Movimientos: s.TotalMovimientos,
			Productos:   s.TotalProductos,
			Valor:       s.TotalValor,
		}
	}
	return out
}
