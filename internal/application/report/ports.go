package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovementRow fila del reporte de movimientos, con las referencias ya
// resueltas a nombres legibles.
type MovementRow struct {
	Fecha           time.Time
	Tipo            string
	NumeroDocumento string
	Producto        string
	CodigoProducto  string
	Cliente         string
	Usuario         string
	Cantidad        int64
	PrecioUnitario  decimal.Decimal
	Total           decimal.Decimal
	Estado          string
}

// Range rango de fechas del reporte.
type Range struct {
	Desde time.Time
	Hasta time.Time
}

// PDFGenerator genera el reporte de movimientos en PDF.
type PDFGenerator interface {
	GenerateMovementsPDF(ctx context.Context, rango Range, rows []MovementRow) ([]byte, error)
}

// ExcelGenerator genera el reporte de movimientos en Excel.
type ExcelGenerator interface {
	GenerateMovementsExcel(ctx context.Context, rango Range, rows []MovementRow) ([]byte, error)
}
