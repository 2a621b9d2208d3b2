// Package mailer implementa el puerto Notifier sobre SMTP (gomail). Sin
// SMTP configurado los avisos solo se registran en el log, útil para
// desarrollo y tests de integración.
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	gomail "gopkg.in/gomail.v2"

	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/config"
	"github.com/panol-app/bodega-api/pkg/logger"
)

var _ ledger.Notifier = (*Mailer)(nil)

// Mailer despacha correos operativos del pañol.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
	log    *logger.Logger
}

// New construye el mailer. Con SMTP_HOST vacío queda en modo log-only.
func New(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	m := &Mailer{cfg: cfg, log: log}
	if cfg.Enabled() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

// StockBajo avisa al administrador que un producto quedó en o bajo su mínimo.
func (m *Mailer) StockBajo(ctx context.Context, p *entity.Product) error {
	asunto := fmt.Sprintf("Stock bajo: %s (%s)", p.Nombre, p.Codigo)
	cuerpo := fmt.Sprintf(
		"El producto %s (%s) quedó con stock %d, bajo su mínimo configurado de %d.\n\nUbicación: %s\n",
		p.Nombre, p.Codigo, p.Stock, p.StockMinimo, p.Ubicacion,
	)
	return m.send(ctx, m.cfg.AdminTo, asunto, cuerpo)
}

// LimiteAlcanzado avisa al cliente y al administrador que el consumo del mes
// tocó el tope.
func (m *Mailer) LimiteAlcanzado(ctx context.Context, c *entity.Customer, consumido decimal.Decimal) error {
	asunto := "Límite mensual de retiros alcanzado"
	cuerpo := fmt.Sprintf(
		"Estimado(a) %s:\n\nSu consumo del mes llegó a $%s, alcanzando el límite mensual de $%s.\nNuevos retiros serán rechazados hasta el próximo mes o hasta que se ajuste su límite.\n\nDepartamento: %s\n",
		c.NombreCompleto(), consumido.StringFixed(0), c.LimiteMensual.StringFixed(0), c.Departamento,
	)
	if err := m.send(ctx, c.Email, asunto, cuerpo); err != nil {
		return err
	}
	if m.cfg.AdminTo != "" && m.cfg.AdminTo != c.Email {
		return m.send(ctx, m.cfg.AdminTo, asunto+": "+c.NombreCompleto(), cuerpo)
	}
	return nil
}

// MovimientoImportante avisa al administrador de un movimiento de alto valor.
func (m *Mailer) MovimientoImportante(ctx context.Context, mov *entity.Movement) error {
	asunto := fmt.Sprintf("Movimiento de alto valor: %s", mov.NumeroDocumento)
	cuerpo := fmt.Sprintf(
		"Se registró un movimiento %s por $%s.\n\nDocumento: %s\nCantidad: %d\nMotivo: %s\n",
		mov.Tipo, mov.Total.StringFixed(0), mov.NumeroDocumento, mov.Cantidad, mov.Motivo,
	)
	return m.send(ctx, m.cfg.AdminTo, asunto, cuerpo)
}

// BienvenidaCliente da la bienvenida a un cliente recién registrado.
func (m *Mailer) BienvenidaCliente(ctx context.Context, c *entity.Customer) error {
	asunto := "Bienvenido al sistema de pañol"
	limite := "sin límite mensual"
	if !c.SinLimite() {
		limite = fmt.Sprintf("límite mensual de $%s", c.LimiteMensual.StringFixed(0))
	}
	cuerpo := fmt.Sprintf(
		"Estimado(a) %s:\n\nSu cuenta quedó registrada en el sistema de pañol con %s.\nDepartamento: %s\n",
		c.NombreCompleto(), limite, c.Departamento,
	)
	return m.send(ctx, c.Email, asunto, cuerpo)
}

// ReporteDiario envía al administrador el resumen de movimientos del día
// agrupado por tipo.
func (m *Mailer) ReporteDiario(ctx context.Context, fecha time.Time, stats []repository.KindStats) error {
	asunto := fmt.Sprintf("Reporte diario de bodega: %s", fecha.Format("02-01-2006"))
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Resumen de movimientos del %s:\n\n", fecha.Format("02-01-2006")))
	if len(stats) == 0 {
		b.WriteString("Sin movimientos registrados hoy.\n")
	}
	for _, s := range stats {
		b.WriteString(fmt.Sprintf(
			"%-12s %d movimientos, %d unidades, $%s\n",
			s.Tipo+":", s.TotalMovimientos, s.TotalProductos, s.TotalValor.StringFixed(0),
		))
	}
	return m.send(ctx, m.cfg.AdminTo, asunto, b.String())
}

func (m *Mailer) send(ctx context.Context, to, asunto, cuerpo string) error {
	if to == "" {
		return nil
	}
	if m.dialer == nil {
		m.log.Info().Str("para", to).Str("asunto", asunto).Msg("SMTP deshabilitado, correo solo registrado")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/plain", cuerpo)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	m.log.Debug().Str("para", to).Str("asunto", asunto).Msg("correo enviado")
	return nil
}
