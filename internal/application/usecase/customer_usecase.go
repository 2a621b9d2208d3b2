package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/logger"
	"github.com/panol-app/bodega-api/pkg/rut"
)

// CustomerUseCase casos de uso para clientes internos (funcionarios y
// departamentos que retiran del pañol).
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	movRepo  repository.MovementRepository
	notifier ledger.Notifier
	log      *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	movRepo repository.MovementRepository,
	notifier ledger.Notifier,
	log *logger.Logger,
) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, movRepo: movRepo, notifier: notifier, log: log}
}

// Create registra un cliente. El RUT se normaliza y valida (módulo 11) y
// debe ser único. Envía correo de bienvenida fuera de la request.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if !rut.Validate(in.RUT) {
		return nil, domain.ErrInvalidRUT
	}
	normalizado := rut.Normalize(in.RUT)
	if in.LimiteMensual.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByRUT(ctx, normalizado)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		RUT:           normalizado,
		Nombre:        in.Nombre,
		Apellido:      in.Apellido,
		Email:         in.Email,
		Telefono:      in.Telefono,
		Direccion:     in.Direccion,
		Comuna:        in.Comuna,
		Ciudad:        in.Ciudad,
		Region:        in.Region,
		Departamento:  in.Departamento,
		Cargo:         in.Cargo,
		LimiteMensual: in.LimiteMensual,
		Estado:        entity.ClienteActivo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	go func() {
		if err := uc.notifier.BienvenidaCliente(context.Background(), customer); err != nil {
			uc.log.Warn().Err(err).Str("cliente_id", customer.ID).Msg("correo de bienvenida falló")
		}
	}()

	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// Update actualiza los datos del cliente. El RUT y el límite mensual no se
// tocan por aquí (el límite tiene su propio endpoint).
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	customer.Nombre = in.Nombre
	customer.Apellido = in.Apellido
	customer.Email = in.Email
	customer.Telefono = in.Telefono
	customer.Direccion = in.Direccion
	customer.Comuna = in.Comuna
	customer.Ciudad = in.Ciudad
	customer.Region = in.Region
	customer.Departamento = in.Departamento
	customer.Cargo = in.Cargo
	if in.Estado != "" {
		customer.Estado = in.Estado
		customer.MotivoInactivacion = in.MotivoInactivacion
		if in.Estado == entity.ClienteActivo {
			customer.MotivoInactivacion = ""
		}
	}
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// UpdateLimit cambia el límite mensual y devuelve el consumo del mes en
// curso para que el operador vea dónde queda el cliente respecto al tope
// nuevo. Si ya lo alcanzó, se dispara el aviso.
func (uc *CustomerUseCase) UpdateLimit(ctx context.Context, id string, in dto.UpdateLimitRequest) (*dto.UpdateLimitResponse, error) {
	if in.LimiteMensual.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := time.Now()
	consumido, err := uc.movRepo.MonthlyConsumption(ctx, id, ledger.MonthStart(now))
	if err != nil {
		return nil, err
	}

	anterior := customer.LimiteMensual
	customer.LimiteMensual = in.LimiteMensual
	customer.UpdatedAt = now
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	if ledger.LimitReached(customer, consumido) {
		avisado := *customer
		go func() {
			if err := uc.notifier.LimiteAlcanzado(context.Background(), &avisado, consumido); err != nil {
				uc.log.Warn().Err(err).Str("cliente_id", avisado.ID).Msg("aviso de límite mensual falló")
			}
		}()
	}

	return &dto.UpdateLimitResponse{
		LimiteAnterior: anterior,
		LimiteNuevo:    customer.LimiteMensual,
		ConsumoActual:  consumido,
	}, nil
}

// List lista clientes con filtros y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, f repository.CustomerFilter) ([]dto.CustomerResponse, dto.PageResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.ToCustomerResponse(c))
	}
	return items, dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}, nil
}

// Delete elimina un cliente. Con movimientos asociados el borrado es lógico;
// sin movimientos se borra de verdad.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}
	n, err := uc.movRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return uc.repo.SoftDelete(ctx, id)
	}
	return uc.repo.Delete(ctx, id)
}
