package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperador   = "operador"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	RUT          string
	Nombre       string
	Apellido     string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Rol          string // admin, supervisor, operador
	Estado       string // activo, inactivo
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Activo indica si el usuario puede iniciar sesión.
func (u *User) Activo() bool { return u.Estado == "activo" }
