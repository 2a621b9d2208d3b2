package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/rut"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor. El RUT se valida y debe ser único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if !rut.Validate(in.RUT) {
		return nil, domain.ErrInvalidRUT
	}
	normalizado := rut.Normalize(in.RUT)
	existing, err := uc.repo.GetByRUT(ctx, normalizado)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	estado := in.Estado
	if estado == "" {
		estado = "activo"
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		RUT:         normalizado,
		RazonSocial: in.RazonSocial,
		Contacto:    in.Contacto,
		Email:       in.Email,
		Telefono:    in.Telefono,
		Direccion:   in.Direccion,
		Estado:      estado,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	resp := dto.ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}
	resp := dto.ToSupplierResponse(supplier)
	return &resp, nil
}

// Update actualiza un proveedor. El RUT no se modifica.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrSupplierNotFound
	}
	supplier.RazonSocial = in.RazonSocial
	supplier.Contacto = in.Contacto
	supplier.Email = in.Email
	supplier.Telefono = in.Telefono
	supplier.Direccion = in.Direccion
	if in.Estado != "" {
		supplier.Estado = in.Estado
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	resp := dto.ToSupplierResponse(supplier)
	return &resp, nil
}

// List lista proveedores con búsqueda y paginación.
func (uc *SupplierUseCase) List(ctx context.Context, buscar string, limit, offset int) ([]dto.SupplierResponse, dto.PageResponse, error) {
	list, total, err := uc.repo.List(ctx, buscar, limit, offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ToSupplierResponse(s))
	}
	return items, dto.PageResponse{Limit: limit, Offset: offset, Total: total}, nil
}

// Delete elimina un proveedor. Siempre lógico: los movimientos históricos
// lo referencian.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrSupplierNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}
