package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	domledger "github.com/panol-app/bodega-api/internal/domain/ledger"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/docnum"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// VoidMovementUseCase anula un movimiento completado sin borrar historia:
// crea un movimiento de compensación con el tipo inverso, revierte el stock
// del producto y marca el original como anulado, todo en una transacción.
// Transición única y terminal: completado → anulado.
type VoidMovementUseCase struct {
	txRunner TxRunner
	notifier Notifier
	log      *logger.Logger
}

// NewVoidMovementUseCase construye el caso de uso.
func NewVoidMovementUseCase(txRunner TxRunner, notifier Notifier, log *logger.Logger) *VoidMovementUseCase {
	return &VoidMovementUseCase{txRunner: txRunner, notifier: notifier, log: log}
}

// VoidMovement anula el movimiento movementID. Devuelve el original (ya
// anulado) y la compensación creada. Cualquier fallo revierte todo: el
// original queda completado y no existe compensación.
func (uc *VoidMovementUseCase) VoidMovement(ctx context.Context, movementID, motivo, usuarioID string) (*entity.Movement, *entity.Movement, error) {
	if movementID == "" || motivo == "" || usuarioID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		original      *entity.Movement
		compensacion  *entity.Movement
		productoFinal *entity.Product
	)

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CustomerRepository,
	) error {
		mov, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		if mov.Estado != entity.MovCompletado {
			return domain.ErrMovementVoided
		}

		producto, err := productRepo.GetForUpdate(ctx, mov.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductNotFound
		}

		tipoInverso, err := domledger.Inverse(mov.Tipo)
		if err != nil {
			return err
		}
		cantidad := domledger.CompensationQuantity(mov)
		stockNuevo, err := domledger.Apply(tipoInverso, cantidad, producto.Stock)
		if err != nil {
			return err
		}

		compensacion = &entity.Movement{
			ID:              uuid.New().String(),
			Tipo:            tipoInverso,
			ProductoID:      mov.ProductoID,
			UsuarioID:       usuarioID,
			ClienteID:       mov.ClienteID,
			ProveedorID:     mov.ProveedorID,
			Cantidad:        cantidad,
			PrecioUnitario:  mov.PrecioUnitario,
			Total:           mov.Total,
			NumeroDocumento: docnum.VoidPrefix + mov.NumeroDocumento,
			Motivo:          "Anulación: " + motivo,
			StockAnterior:   producto.Stock,
			StockNuevo:      stockNuevo,
			Estado:          entity.MovCompletado,
			CreatedAt:       now,
		}
		if err := movRepo.Create(ctx, compensacion); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, producto.ID, stockNuevo); err != nil {
			return err
		}
		if err := movRepo.MarkVoided(ctx, mov.ID, motivo); err != nil {
			return err
		}

		mov.Estado = entity.MovAnulado
		mov.Motivo = motivo
		original = mov

		copia := *producto
		copia.Stock = stockNuevo
		productoFinal = &copia
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Anular una entrada puede dejar el stock bajo el mínimo.
	if productoFinal.StockBajo() {
		go func() {
			if err := uc.notifier.StockBajo(context.Background(), productoFinal); err != nil {
				uc.log.Warn().Err(err).Str("producto_id", productoFinal.ID).Msg("aviso de stock bajo falló")
			}
		}()
	}

	return original, compensacion, nil
}
