package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	domledger "github.com/panol-app/bodega-api/internal/domain/ledger"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/docnum"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// umbralMovimientoImportante dispara un aviso por movimientos de alto valor.
var umbralMovimientoImportante = decimal.NewFromInt(1_000_000)

// RegisterMovementUseCase registra movimientos (entrada, salida, ajuste,
// devolución) de forma transaccional: bloquea la fila del producto
// (SELECT FOR UPDATE), valida stock y límite mensual, persiste el movimiento
// con snapshots de stock y actualiza productos.stock en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	notifier Notifier,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		notifier:     notifier,
		log:          log,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para ajuste, Cantidad es el stock absoluto a fijar.
type MovementInput struct {
	Tipo            string
	ProductoID      string
	ClienteID       string
	ProveedorID     string
	Cantidad        int64
	PrecioUnitario  decimal.Decimal
	NumeroDocumento string
	Motivo          string
	ArchivoAdjunto  string
}

// RegisterMovement valida y confirma un movimiento. Todo error aborta la
// transacción: nunca queda un movimiento sin su actualización de stock ni
// viceversa. Las notificaciones (stock bajo, límite alcanzado) se despachan
// después del commit y no afectan el resultado.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput, usuarioID string) (*entity.Movement, error) {
	if !entity.ValidKind(input.Tipo) || input.Cantidad < 1 || input.PrecioUnitario.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if usuarioID == "" || input.ProductoID == "" {
		return nil, domain.ErrInvalidInput
	}

	// El proveedor es un requisito blando de las entradas: si viene, debe existir.
	if input.ProveedorID != "" {
		proveedor, err := uc.supplierRepo.GetByID(ctx, input.ProveedorID)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrSupplierNotFound
		}
	}

	now := time.Now()
	total := decimal.NewFromInt(input.Cantidad).Mul(input.PrecioUnitario)

	var (
		mov            *entity.Movement
		productoFinal  *entity.Product
		clienteAvisado *entity.Customer
		consumidoFinal decimal.Decimal
	)

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// Bloquea la fila del producto durante el read-modify-write del stock
		// para que dos movimientos concurrentes no pierdan actualizaciones.
		producto, err := productRepo.GetForUpdate(ctx, input.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductNotFound
		}
		if !producto.Activo() {
			return domain.ErrProductInactive
		}

		if input.Tipo == entity.MovSalida && input.ClienteID != "" {
			cliente, err := customerRepo.GetByID(ctx, input.ClienteID)
			if err != nil {
				return err
			}
			if cliente == nil {
				return domain.ErrCustomerNotFound
			}
			if !cliente.Activo() {
				return domain.ErrCustomerInactive
			}
			consumido, err := CheckMonthlyLimit(ctx, movRepo, cliente, total, now)
			if err != nil {
				return err
			}
			nuevoConsumo := consumido.Add(total)
			if LimitReached(cliente, nuevoConsumo) {
				clienteAvisado = cliente
				consumidoFinal = nuevoConsumo
			}
		}

		stockNuevo, err := domledger.Apply(input.Tipo, input.Cantidad, producto.Stock)
		if err != nil {
			return err
		}

		numeroDoc := input.NumeroDocumento
		if numeroDoc == "" {
			numeroDoc = docnum.Generate(input.Tipo, now)
		}

		mov = &entity.Movement{
			ID:              uuid.New().String(),
			Tipo:            input.Tipo,
			ProductoID:      producto.ID,
			UsuarioID:       usuarioID,
			ClienteID:       input.ClienteID,
			ProveedorID:     input.ProveedorID,
			Cantidad:        input.Cantidad,
			PrecioUnitario:  input.PrecioUnitario,
			Total:           total,
			NumeroDocumento: numeroDoc,
			ArchivoAdjunto:  input.ArchivoAdjunto,
			Motivo:          input.Motivo,
			StockAnterior:   producto.Stock,
			StockNuevo:      stockNuevo,
			Estado:          entity.MovCompletado,
			CreatedAt:       now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, producto.ID, stockNuevo); err != nil {
			return err
		}

		copia := *producto
		copia.Stock = stockNuevo
		productoFinal = &copia
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAfterCommit(mov, productoFinal, clienteAvisado, consumidoFinal)
	return mov, nil
}

// notifyAfterCommit despacha los avisos fuera de la transacción. Los errores
// solo se registran: una notificación caída jamás revierte un movimiento.
func (uc *RegisterMovementUseCase) notifyAfterCommit(
	mov *entity.Movement,
	producto *entity.Product,
	cliente *entity.Customer,
	consumido decimal.Decimal,
) {
	go func() {
		ctx := context.Background()
		if producto.StockBajo() {
			if err := uc.notifier.StockBajo(ctx, producto); err != nil {
				uc.log.Warn().Err(err).Str("producto_id", producto.ID).Msg("aviso de stock bajo falló")
			}
		}
		if cliente != nil {
			if err := uc.notifier.LimiteAlcanzado(ctx, cliente, consumido); err != nil {
				uc.log.Warn().Err(err).Str("cliente_id", cliente.ID).Msg("aviso de límite mensual falló")
			}
		}
		if mov.Total.GreaterThanOrEqual(umbralMovimientoImportante) {
			if err := uc.notifier.MovimientoImportante(ctx, mov); err != nil {
				uc.log.Warn().Err(err).Str("movimiento_id", mov.ID).Msg("aviso de movimiento importante falló")
			}
		}
	}()
}
