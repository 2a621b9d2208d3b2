package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/pkg/rut"
)

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	RUT           string          `json:"rut" validate:"required,max=12"`
	Nombre        string          `json:"nombre" validate:"required,min=2,max=100"`
	Apellido      string          `json:"apellido" validate:"required,min=2,max=100"`
	Email         string          `json:"email" validate:"required,email"`
	Telefono      string          `json:"telefono" validate:"omitempty,max=20"`
	Direccion     string          `json:"direccion" validate:"omitempty,max=255"`
	Comuna        string          `json:"comuna" validate:"omitempty,max=100"`
	Ciudad        string          `json:"ciudad" validate:"omitempty,max=100"`
	Region        string          `json:"region" validate:"omitempty,max=100"`
	Departamento  string          `json:"departamento" validate:"required,max=100"`
	Cargo         string          `json:"cargo" validate:"omitempty,max=100"`
	LimiteMensual decimal.Decimal `json:"limite_mensual"`
}

// UpdateCustomerRequest body para PUT /api/clientes/:id.
type UpdateCustomerRequest struct {
	Nombre             string `json:"nombre" validate:"required,min=2,max=100"`
	Apellido           string `json:"apellido" validate:"required,min=2,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Telefono           string `json:"telefono" validate:"omitempty,max=20"`
	Direccion          string `json:"direccion" validate:"omitempty,max=255"`
	Comuna             string `json:"comuna" validate:"omitempty,max=100"`
	Ciudad             string `json:"ciudad" validate:"omitempty,max=100"`
	Region             string `json:"region" validate:"omitempty,max=100"`
	Departamento       string `json:"departamento" validate:"required,max=100"`
	Cargo              string `json:"cargo" validate:"omitempty,max=100"`
	Estado             string `json:"estado" validate:"omitempty,oneof=activo inactivo bloqueado"`
	MotivoInactivacion string `json:"motivo_inactivacion" validate:"omitempty,max=255"`
}

// UpdateLimitRequest body para PATCH /api/clientes/:id/limite.
type UpdateLimitRequest struct {
	LimiteMensual decimal.Decimal `json:"limite_mensual"`
}

// UpdateLimitResponse resultado del cambio de límite mensual.
type UpdateLimitResponse struct {
	LimiteAnterior decimal.Decimal `json:"limite_anterior"`
	LimiteNuevo    decimal.Decimal `json:"limite_nuevo"`
	ConsumoActual  decimal.Decimal `json:"consumo_actual"`
}

// CustomerResponse representación JSON de un cliente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	RUT            string          `json:"rut"` // formateado con puntos y guión
	Nombre         string          `json:"nombre"`
	Apellido       string          `json:"apellido"`
	NombreCompleto string          `json:"nombre_completo"`
	Email          string          `json:"email"`
	Telefono       string          `json:"telefono,omitempty"`
	Direccion      string          `json:"direccion,omitempty"`
	Comuna         string          `json:"comuna,omitempty"`
	Ciudad         string          `json:"ciudad,omitempty"`
	Region         string          `json:"region,omitempty"`
	Departamento   string          `json:"departamento"`
	Cargo          string          `json:"cargo,omitempty"`
	LimiteMensual  decimal.Decimal `json:"limite_mensual"`
	Estado         string          `json:"estado"`
	FechaCreacion  time.Time       `json:"fecha_creacion"`
}

// ToCustomerResponse convierte la entidad a su representación JSON.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		RUT:            rut.Format(c.RUT),
		Nombre:         c.Nombre,
		Apellido:       c.Apellido,
		NombreCompleto: c.NombreCompleto(),
		Email:          c.Email,
		Telefono:       c.Telefono,
		Direccion:      c.Direccion,
		Comuna:         c.Comuna,
		Ciudad:         c.Ciudad,
		Region:         c.Region,
		Departamento:   c.Departamento,
		Cargo:          c.Cargo,
		LimiteMensual:  c.LimiteMensual,
		Estado:         c.Estado,
		FechaCreacion:  c.CreatedAt,
	}
}
