package dto

import (
	"time"

	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/pkg/rut"
)

// CategoryRequest body para crear/actualizar categorías.
type CategoryRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=500"`
	Estado      string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// CategoryResponse representación JSON de una categoría.
type CategoryResponse struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Descripcion   string    `json:"descripcion,omitempty"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// ToCategoryResponse convierte la entidad a su representación JSON.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Descripcion:   c.Descripcion,
		Estado:        c.Estado,
		FechaCreacion: c.CreatedAt,
	}
}

// SupplierRequest body para crear/actualizar proveedores.
type SupplierRequest struct {
	RUT         string `json:"rut" validate:"required,max=12"`
	RazonSocial string `json:"razon_social" validate:"required,min=3,max=200"`
	Contacto    string `json:"contacto" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Telefono    string `json:"telefono" validate:"omitempty,max=20"`
	Direccion   string `json:"direccion" validate:"omitempty,max=255"`
	Estado      string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// SupplierResponse representación JSON de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	RUT           string    `json:"rut"`
	RazonSocial   string    `json:"razon_social"`
	Contacto      string    `json:"contacto,omitempty"`
	Email         string    `json:"email,omitempty"`
	Telefono      string    `json:"telefono,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// ToSupplierResponse convierte la entidad a su representación JSON.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		RUT:           rut.Format(s.RUT),
		RazonSocial:   s.RazonSocial,
		Contacto:      s.Contacto,
		Email:         s.Email,
		Telefono:      s.Telefono,
		Direccion:     s.Direccion,
		Estado:        s.Estado,
		FechaCreacion: s.CreatedAt,
	}
}
