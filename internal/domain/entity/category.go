package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	Nombre      string
	Descripcion string
	Estado      string // activo, inactivo
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
