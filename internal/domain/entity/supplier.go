package entity

import "time"

// Supplier representa un proveedor externo de productos.
type Supplier struct {
	ID          string
	RUT         string
	RazonSocial string
	Contacto    string
	Email       string
	Telefono    string
	Direccion   string
	Estado      string // activo, inactivo
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
