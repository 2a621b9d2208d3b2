package dto

import (
	"time"

	"github.com/panol-app/bodega-api/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest body para POST /api/auth/registro (solo admin).
type RegisterRequest struct {
	RUT      string `json:"rut" validate:"required,max=12"`
	Nombre   string `json:"nombre" validate:"required,min=2,max=100"`
	Apellido string `json:"apellido" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"omitempty,oneof=admin supervisor operador"`
}

// UserResponse representación JSON de un usuario (sin hash).
type UserResponse struct {
	ID            string    `json:"id"`
	RUT           string    `json:"rut"`
	Nombre        string    `json:"nombre"`
	Apellido      string    `json:"apellido"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	Estado        string    `json:"estado"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}

// ToUserResponse convierte la entidad a su representación JSON.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		RUT:           u.RUT,
		Nombre:        u.Nombre,
		Apellido:      u.Apellido,
		Email:         u.Email,
		Rol:           u.Rol,
		Estado:        u.Estado,
		FechaCreacion: u.CreatedAt,
	}
}
