// Package ledger contiene la aritmética de stock del motor de movimientos
// (servicios de dominio puros, sin persistencia).
package ledger

import (
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// Apply calcula el stock resultante de aplicar un movimiento sobre el stock
// actual. Entrada y devolución suman, salida resta (error si no alcanza) y
// ajuste fija el stock en el valor absoluto de cantidad.
func Apply(tipo string, cantidad, stockActual int64) (int64, error) {
	switch tipo {
	case entity.MovEntrada, entity.MovDevolucion:
		return stockActual + cantidad, nil
	case entity.MovSalida:
		if cantidad > stockActual {
			return 0, &domain.StockError{Disponible: stockActual, Solicitado: cantidad}
		}
		return stockActual - cantidad, nil
	case entity.MovAjuste:
		return cantidad, nil
	}
	return 0, domain.ErrInvalidInput
}

// Inverse devuelve el tipo del movimiento de compensación que revierte el
// efecto de tipo sobre el stock. Entrada y devolución (incrementos) se
// revierten con una salida; una salida con una entrada. El ajuste se revierte
// con otro ajuste que restaura el stock previo (el valor absoluto lo aporta
// el stock_anterior del movimiento original).
func Inverse(tipo string) (string, error) {
	switch tipo {
	case entity.MovEntrada, entity.MovDevolucion:
		return entity.MovSalida, nil
	case entity.MovSalida:
		return entity.MovEntrada, nil
	case entity.MovAjuste:
		return entity.MovAjuste, nil
	}
	return "", domain.ErrInvalidInput
}

// CompensationQuantity devuelve la cantidad del movimiento de compensación.
// Para un ajuste la compensación vuelve a fijar el stock en el valor previo
// al ajuste; para los demás tipos se reutiliza la cantidad original.
func CompensationQuantity(original *entity.Movement) int64 {
	if original.Tipo == entity.MovAjuste {
		return original.StockAnterior
	}
	return original.Cantidad
}
