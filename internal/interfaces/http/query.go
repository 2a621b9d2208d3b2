package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// parsePage lee limite/offset del query string con sus defaults.
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, fmt.Errorf("%w: parámetros de página inválidos", domain.ErrInvalidInput)
	}
	if err := validate.Struct(&p); err != nil {
		return p, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	p.DefaultPage()
	return p, nil
}

// parseDateQuery acepta fecha simple (2006-01-02) o RFC3339.
func parseDateQuery(c *fiber.Ctx, nombre string) (*time.Time, error) {
	raw := c.Query(nombre)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: fecha %q inválida en %q", domain.ErrInvalidInput, raw, nombre)
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	page, err := parsePage(c)
	if err != nil {
		return f, err
	}
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return f, err
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return f, err
	}
	f = repository.MovementFilter{
		Tipo:        c.Query("tipo"),
		ProductoID:  c.Query("producto_id"),
		ClienteID:   c.Query("cliente_id"),
		ProveedorID: c.Query("proveedor_id"),
		Estado:      c.Query("estado"),
		Desde:       desde,
		Hasta:       hasta,
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	return f, nil
}
