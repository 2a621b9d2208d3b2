// Package excel genera el reporte de movimientos en formato xlsx (excelize).
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/panol-app/bodega-api/internal/application/report"
)

var _ report.ExcelGenerator = (*MovementsReportGenerator)(nil)

const sheetName = "Movimientos"

// MovementsReportGenerator implementa report.ExcelGenerator.
type MovementsReportGenerator struct{}

// NewMovementsReportGenerator construye el generador.
func NewMovementsReportGenerator() *MovementsReportGenerator { return &MovementsReportGenerator{} }

// GenerateMovementsExcel genera el xlsx y devuelve sus bytes.
func (g *MovementsReportGenerator) GenerateMovementsExcel(
	_ context.Context,
	rango report.Range,
	rows []report.MovementRow,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	titulo := fmt.Sprintf("Movimientos de bodega: %s a %s",
		rango.Desde.Format("02/01/2006"), rango.Hasta.Format("02/01/2006"))
	if err := f.SetCellValue(sheetName, "A1", titulo); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	headers := []string{"Fecha", "Tipo", "Documento", "Código", "Producto",
		"Cliente", "Usuario", "Cantidad", "Precio Unitario", "Total", "Estado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 3)
	last, _ := excelize.CoordinatesToCellName(len(headers), 3)
	_ = f.SetCellStyle(sheetName, first, last, headerStyle)

	for i, r := range rows {
		fila := i + 4
		valores := []any{
			r.Fecha.Format("02/01/2006 15:04"),
			r.Tipo,
			r.NumeroDocumento,
			r.CodigoProducto,
			r.Producto,
			r.Cliente,
			r.Usuario,
			r.Cantidad,
			r.PrecioUnitario.InexactFloat64(),
			r.Total.InexactFloat64(),
			r.Estado,
		}
		for j, v := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, fila)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", fila, err)
			}
		}
	}

	// Anchos razonables para las columnas de texto largo.
	_ = f.SetColWidth(sheetName, "A", "A", 16)
	_ = f.SetColWidth(sheetName, "C", "C", 20)
	_ = f.SetColWidth(sheetName, "E", "G", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
