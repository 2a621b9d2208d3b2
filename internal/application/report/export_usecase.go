package report

import (
	"context"
	"fmt"
	"time"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/repository"
)

// maxExportRows tope de filas por exportación. Rangos más grandes deben
// acotarse con filtros.
const maxExportRows = 10000

// ExportUseCase arma el reporte de movimientos de un rango y lo entrega en
// PDF o Excel. Las referencias (producto, cliente, usuario) se resuelven a
// nombres con un caché por request.
type ExportUseCase struct {
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	pdf          PDFGenerator
	excel        ExcelGenerator
}

// NewExportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewExportUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	pdf PDFGenerator,
	excel ExcelGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		movRepo:      movRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		pdf:          pdf,
		excel:        excel,
	}
}

// ExportPDF genera el reporte en PDF. Retorna los bytes y el nombre de
// archivo sugerido.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, f repository.MovementFilter) ([]byte, string, error) {
	rango, rows, err := uc.buildRows(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateMovementsPDF(ctx, rango, rows)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	return data, exportFilename(rango, "pdf"), nil
}

// ExportExcel genera el reporte en Excel. Retorna los bytes y el nombre de
// archivo sugerido.
func (uc *ExportUseCase) ExportExcel(ctx context.Context, f repository.MovementFilter) ([]byte, string, error) {
	rango, rows, err := uc.buildRows(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.excel.GenerateMovementsExcel(ctx, rango, rows)
	if err != nil {
		return nil, "", fmt.Errorf("reporte excel: %w", err)
	}
	return data, exportFilename(rango, "xlsx"), nil
}

func (uc *ExportUseCase) buildRows(ctx context.Context, f repository.MovementFilter) (Range, []MovementRow, error) {
	hasta := time.Now()
	if f.Hasta != nil {
		hasta = *f.Hasta
	}
	desde := hasta.AddDate(0, 0, -30)
	if f.Desde != nil {
		desde = *f.Desde
	}
	if desde.After(hasta) {
		return Range{}, nil, domain.ErrInvalidInput
	}
	f.Desde = &desde
	f.Hasta = &hasta
	f.Limit = maxExportRows
	f.Offset = 0

	movs, _, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return Range{}, nil, err
	}

	productos := map[string][2]string{} // id -> {nombre, codigo}
	clientes := map[string]string{}
	usuarios := map[string]string{}

	rows := make([]MovementRow, 0, len(movs))
	for _, m := range movs {
		prod, ok := productos[m.ProductoID]
		if !ok {
			prod = [2]string{m.ProductoID, ""}
			if p, err := uc.productRepo.GetByID(ctx, m.ProductoID); err == nil && p != nil {
				prod = [2]string{p.Nombre, p.Codigo}
			}
			productos[m.ProductoID] = prod
		}

		cliente := ""
		if m.ClienteID != "" {
			cliente, ok = clientes[m.ClienteID]
			if !ok {
				cliente = m.ClienteID
				if c, err := uc.customerRepo.GetByID(ctx, m.ClienteID); err == nil && c != nil {
					cliente = c.NombreCompleto()
				}
				clientes[m.ClienteID] = cliente
			}
		}

		usuario, ok := usuarios[m.UsuarioID]
		if !ok {
			usuario = m.UsuarioID
			if u, err := uc.userRepo.GetByID(ctx, m.UsuarioID); err == nil && u != nil {
				usuario = u.Nombre + " " + u.Apellido
			}
			usuarios[m.UsuarioID] = usuario
		}

		rows = append(rows, MovementRow{
			Fecha:           m.CreatedAt,
			Tipo:            m.Tipo,
			NumeroDocumento: m.NumeroDocumento,
			Producto:        prod[0],
			CodigoProducto:  prod[1],
			Cliente:         cliente,
			Usuario:         usuario,
			Cantidad:        m.Cantidad,
			PrecioUnitario:  m.PrecioUnitario,
			Total:           m.Total,
			Estado:          m.Estado,
		})
	}
	return Range{Desde: desde, Hasta: hasta}, rows, nil
}

func exportFilename(rango Range, ext string) string {
	return fmt.Sprintf("movimientos_%s_%s.%s",
		rango.Desde.Format("20060102"), rango.Hasta.Format("20060102"), ext)
}
