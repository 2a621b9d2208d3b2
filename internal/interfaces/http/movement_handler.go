package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/application/report"
	"github.com/panol-app/bodega-api/internal/application/usecase"
	"github.com/panol-app/bodega-api/internal/infrastructure/storage"
)

// MovementHandler maneja el registro, anulación, consulta y exportación de
// movimientos de bodega.
type MovementHandler struct {
	registerUC *ledger.RegisterMovementUseCase
	voidUC     *ledger.VoidMovementUseCase
	queryUC    *usecase.MovementQueryUseCase
	exportUC   *report.ExportUseCase
	store      *storage.Store
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	registerUC *ledger.RegisterMovementUseCase,
	voidUC *ledger.VoidMovementUseCase,
	queryUC *usecase.MovementQueryUseCase,
	exportUC *report.ExportUseCase,
	store *storage.Store,
) *MovementHandler {
	return &MovementHandler{
		registerUC: registerUC,
		voidUC:     voidUC,
		queryUC:    queryUC,
		exportUC:   exportUC,
		store:      store,
	}
}

// Register godoc
// @Summary      Registrar movimiento de bodega
// @Description  Acepta JSON o multipart/form-data con un archivo adjunto
//
//	opcional (campo "archivo": guía, factura o foto).
//
// @Tags         movimientos
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "tipo, producto_id, cantidad, precio_unitario; cliente_id en salidas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	// Adjunto opcional: se valida en temp/ y se promueve a documentos/ ANTES
	// de registrar, así el movimiento nunca referencia un archivo que no
	// existe. Si el registro falla, el archivo promovido se borra.
	adjunto := ""
	if fh, err := c.FormFile("archivo"); err == nil && fh != nil {
		rel, err := h.store.SaveTemp(fh)
		if err != nil {
			return respondError(c, err)
		}
		adjunto, err = h.store.Promote(rel)
		if err != nil {
			_ = h.store.Remove(rel)
			return respondError(c, err)
		}
	}

	input := ledger.MovementInput{
		Tipo:            in.Tipo,
		ProductoID:      in.ProductoID,
		ClienteID:       in.ClienteID,
		ProveedorID:     in.ProveedorID,
		Cantidad:        in.Cantidad,
		PrecioUnitario:  in.PrecioUnitario,
		NumeroDocumento: in.NumeroDocumento,
		Motivo:          in.Motivo,
		ArchivoAdjunto:  adjunto,
	}

	mov, err := h.registerUC.RegisterMovement(c.Context(), input, GetUserID(c))
	if err != nil {
		_ = h.store.Remove(adjunto)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov, time.Now()))
}

// Void godoc
// @Summary      Anular movimiento
// @Description  Crea un movimiento de compensación y marca el original como
//
//	anulado. No borra historia.
//
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del movimiento"
// @Param        body  body  dto.VoidMovementRequest  true  "motivo de la anulación"
// @Success      200   {object}  dto.VoidMovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id}/anular [patch]
func (h *MovementHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidMovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	anulado, comp, err := h.voidUC.VoidMovement(c.Context(), c.Params("id"), in.Motivo, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	return c.JSON(dto.VoidMovementResponse{
		MovimientoAnulado:      dto.ToMovementResponse(anulado, now),
		MovimientoCompensacion: dto.ToMovementResponse(comp, now),
	})
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.queryUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mov)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "entrada|salida|ajuste|devolucion"
// @Param        producto_id  query  string  false  "filtrar por producto"
// @Param        cliente_id   query  string  false  "filtrar por cliente"
// @Param        estado       query  string  false  "completado|anulado"
// @Param        desde        query  string  false  "fecha inicial (2006-01-02)"
// @Param        hasta        query  string  false  "fecha final (2006-01-02)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	items, page, err := h.queryUC.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "pagina": page})
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/productos/{id}/movimientos [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	f.ProductoID = c.Params("id")
	items, page, err := h.queryUC.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "pagina": page})
}

// ListByCustomer godoc
// @Summary      Historial de retiros de un cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/clientes/{id}/movimientos [get]
func (h *MovementHandler) ListByCustomer(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	f.ClienteID = c.Params("id")
	items, page, err := h.queryUC.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "pagina": page})
}

// Stats godoc
// @Summary      Estadísticas por tipo de movimiento
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "fecha inicial (2006-01-02); default 30 días atrás"
// @Param        fecha_fin     query  string  false  "fecha final"
// @Success      200  {object}  map[string]dto.KindStatsResponse
// @Router       /api/movimientos/estadisticas [get]
func (h *MovementHandler) Stats(c *fiber.Ctx) error {
	desde, err := parseDateQuery(c, "fecha_inicio")
	if err != nil {
		return respondError(c, err)
	}
	hasta, err := parseDateQuery(c, "fecha_fin")
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.queryUC.Stats(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ReporteDiario godoc
// @Summary      Reporte diario por correo
// @Description  Agrega los movimientos de hoy por tipo, envía el resumen al
//
//	administrador y devuelve las cifras.
//
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]dto.KindStatsResponse
// @Router       /api/movimientos/reporte-diario [get]
func (h *MovementHandler) ReporteDiario(c *fiber.Ctx) error {
	stats, err := h.queryUC.ReporteDiario(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ExportExcel godoc
// @Summary      Exportar movimientos a Excel
// @Tags         movimientos
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router       /api/movimientos/exportar/excel [get]
func (h *MovementHandler) ExportExcel(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, nombre, err := h.exportUC.ExportExcel(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombre))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar movimientos a PDF
// @Tags         movimientos
// @Security     Bearer
// @Produce      application/pdf
// @Router       /api/movimientos/exportar/pdf [get]
func (h *MovementHandler) ExportPDF(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, nombre, err := h.exportUC.ExportPDF(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombre))
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
