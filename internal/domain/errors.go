package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidRUT           = errors.New("RUT inválido")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrProductInactive      = errors.New("producto inactivo")
	ErrCustomerNotFound     = errors.New("cliente no encontrado")
	ErrCustomerInactive     = errors.New("cliente inactivo")
	ErrSupplierNotFound     = errors.New("proveedor no encontrado")
	ErrMovementNotFound     = errors.New("movimiento no encontrado")
	ErrMovementVoided       = errors.New("el movimiento ya está anulado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrMonthlyLimitExceeded = errors.New("excede el límite mensual del cliente")
	ErrHasMovements         = errors.New("el recurso tiene movimientos asociados")
	ErrCategoryInUse        = errors.New("la categoría tiene productos asociados")
)

// StockError detalla un rechazo por stock insuficiente.
// errors.Is(err, ErrInsufficientStock) == true.
type StockError struct {
	Disponible int64
	Solicitado int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Disponible, e.Solicitado)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// LimitError detalla un rechazo del guardián de límite mensual.
// errors.Is(err, ErrMonthlyLimitExceeded) == true.
type LimitError struct {
	Limite    decimal.Decimal
	Consumido decimal.Decimal
	Monto     decimal.Decimal
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("excede el límite mensual: límite %s, consumido %s, monto %s",
		e.Limite, e.Consumido, e.Monto)
}

func (e *LimitError) Unwrap() error { return ErrMonthlyLimitExceeded }
