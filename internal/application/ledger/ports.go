package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o se persiste el movimiento Y el stock, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// Notifier despacha avisos operativos (correo). Los fallos se registran en el
// log y nunca afectan el resultado de la transacción que los originó.
type Notifier interface {
	StockBajo(ctx context.Context, product *entity.Product) error
	LimiteAlcanzado(ctx context.Context, customer *entity.Customer, consumido decimal.Decimal) error
	MovimientoImportante(ctx context.Context, movement *entity.Movement) error
	BienvenidaCliente(ctx context.Context, customer *entity.Customer) error
	ReporteDiario(ctx context.Context, fecha time.Time, stats []repository.KindStats) error
}
