package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// MonthStart devuelve el primer día del mes de t a las 00:00 (ventana del
// límite mensual).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// CheckMonthlyLimit verifica una salida prospectiva contra el tope mensual del
// cliente. Devuelve el consumo acumulado del mes; si límite > 0 y
// consumo + monto lo supera, retorna *domain.LimitError. Se ejecuta con el
// movRepo atado a la transacción de registro para que la suma sea consistente
// con lo que se va a escribir.
func CheckMonthlyLimit(
	ctx context.Context,
	movRepo repository.MovementRepository,
	cliente *entity.Customer,
	monto decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	consumido, err := movRepo.MonthlyConsumption(ctx, cliente.ID, MonthStart(now))
	if err != nil {
		return decimal.Zero, err
	}
	if cliente.SinLimite() {
		return consumido, nil
	}
	if consumido.Add(monto).GreaterThan(cliente.LimiteMensual) {
		return consumido, &domain.LimitError{
			Limite:    cliente.LimiteMensual,
			Consumido: consumido,
			Monto:     monto,
		}
	}
	return consumido, nil
}

// LimitReached indica si el consumo toca o supera el tope (con tope > 0).
// Dispara el aviso informativo de límite alcanzado; no bloquea.
func LimitReached(cliente *entity.Customer, consumido decimal.Decimal) bool {
	return !cliente.SinLimite() && consumido.GreaterThanOrEqual(cliente.LimiteMensual)
}
