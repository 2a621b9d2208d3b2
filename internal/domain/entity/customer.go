package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Customer.
const (
	ClienteActivo    = "activo"
	ClienteInactivo  = "inactivo"
	ClienteBloqueado = "bloqueado"
)

// Customer representa un cliente interno (funcionario o departamento que
// retira del pañol). LimiteMensual acota la suma de salidas completadas del
// mes calendario; cero significa sin límite.
type Customer struct {
	ID                 string
	RUT                string // normalizado, dígito verificador validado
	Nombre             string
	Apellido           string
	Email              string
	Telefono           string
	Direccion          string
	Comuna             string
	Ciudad             string
	Region             string
	Departamento       string
	Cargo              string
	LimiteMensual      decimal.Decimal // 0 = ilimitado
	Estado             string          // activo, inactivo, bloqueado
	MotivoInactivacion string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Activo indica si el cliente puede recibir salidas.
func (c *Customer) Activo() bool { return c.Estado == ClienteActivo }

// SinLimite indica si el cliente no tiene tope mensual.
func (c *Customer) SinLimite() bool { return c.LimiteMensual.IsZero() }

// NombreCompleto devuelve "Nombre Apellido".
func (c *Customer) NombreCompleto() string { return c.Nombre + " " + c.Apellido }
