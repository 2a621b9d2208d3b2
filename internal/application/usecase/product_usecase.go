package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca por
// aquí: solo el motor de movimientos lo escribe.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	movRepo      repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	movRepo repository.MovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		movRepo:      movRepo,
	}
}

// Create crea un producto con stock 0. El stock inicial se carga después
// con un movimiento de entrada o ajuste.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCodigo(ctx, in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	categoria, err := uc.categoryRepo.GetByID(ctx, in.CategoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProveedorID != "" {
		proveedor, err := uc.supplierRepo.GetByID(ctx, in.ProveedorID)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrSupplierNotFound
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		CategoriaID:  in.CategoriaID,
		ProveedorID:  in.ProveedorID,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		Stock:        0,
		StockMinimo:  in.StockMinimo,
		Ubicacion:    in.Ubicacion,
		Estado:       entity.ProductActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update actualiza los datos maestros del producto. Código y stock no se
// modifican por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.CategoriaID != product.CategoriaID {
		categoria, err := uc.categoryRepo.GetByID(ctx, in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.ProveedorID != "" && in.ProveedorID != product.ProveedorID {
		proveedor, err := uc.supplierRepo.GetByID(ctx, in.ProveedorID)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrSupplierNotFound
		}
	}

	product.Nombre = in.Nombre
	product.Descripcion = in.Descripcion
	product.CategoriaID = in.CategoriaID
	product.ProveedorID = in.ProveedorID
	product.PrecioCompra = in.PrecioCompra
	product.PrecioVenta = in.PrecioVenta
	product.StockMinimo = in.StockMinimo
	product.Ubicacion = in.Ubicacion
	if in.Estado != "" {
		product.Estado = in.Estado
		product.MotivoInactivacion = in.MotivoInactivacion
		if in.Estado == entity.ProductActivo {
			product.MotivoInactivacion = ""
		}
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter) ([]dto.ProductResponse, dto.PageResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return items, dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}, nil
}

// Delete elimina un producto. Si tiene movimientos se usa borrado lógico
// para no romper la historia; sin movimientos se borra de verdad.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	n, err := uc.movRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return uc.repo.SoftDelete(ctx, id)
	}
	return uc.repo.Delete(ctx, id)
}
