// Package pdf genera el reporte de movimientos de bodega con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                            │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Documento | Producto | Cliente |      │
//	│         Usuario | Cant | P.Unit | Total | Estado             │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales por tipo                                   │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/panol-app/bodega-api/internal/application/report"
	"github.com/panol-app/bodega-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorVoided  = &props.Color{Red: 170, Green: 40, Blue: 40}
)

var _ report.PDFGenerator = (*MovementsReportGenerator)(nil)

// MovementsReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MovementsReportGenerator struct{}

// NewMovementsReportGenerator construye el generador.
func NewMovementsReportGenerator() *MovementsReportGenerator { return &MovementsReportGenerator{} }

// GenerateMovementsPDF genera el reporte y devuelve sus bytes.
func (g *MovementsReportGenerator) GenerateMovementsPDF(
	_ context.Context,
	rango report.Range,
	rows []report.MovementRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Movimientos de Bodega", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rango, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + rango + conteo.
func headerRow(rango report.Range, total int) core.Row {
	periodo := fmt.Sprintf("Período: %s a %s",
		rango.Desde.Format("02/01/2006"), rango.Hasta.Format("02/01/2006"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("MOVIMIENTOS DE BODEGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d movimientos", total), props.Text{
				Size: 10, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 1, align.Left),
		h("Tipo", 1, align.Left),
		h("Documento", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cliente", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Total", 1, align.Right),
		h("Estado", 1, align.Center),
	)
}

func detailRow(r report.MovementRow) core.Row {
	estadoColor := colorGray
	if r.Estado == entity.MovAnulado {
		estadoColor = colorVoided
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	producto := r.Producto
	if r.CodigoProducto != "" {
		producto = r.CodigoProducto + " " + r.Producto
	}
	return row.New(6).Add(
		cell(r.Fecha.Format("02/01 15:04"), 1, align.Left),
		cell(r.Tipo, 1, align.Left),
		cell(r.NumeroDocumento, 2, align.Left),
		cell(producto, 3, align.Left),
		cell(r.Cliente, 2, align.Left),
		cell(fmt.Sprintf("%d", r.Cantidad), 1, align.Right),
		cell("$"+formatMoney(r.Total.StringFixed(0)), 1, align.Right),
		col.New(1).Add(text.New(r.Estado, props.Text{
			Size: 7, Align: align.Center, Top: 1, Color: estadoColor,
		})),
	)
}

// summaryRows: totales por tipo sobre movimientos completados.
func summaryRows(rows []report.MovementRow) []core.Row {
	type acc struct {
		n     int
		valor decimal.Decimal
	}
	totales := map[string]*acc{}
	for _, r := range rows {
		if r.Estado != entity.MovCompletado {
			continue
		}
		a, ok := totales[r.Tipo]
		if !ok {
			a = &acc{valor: decimal.Zero}
			totales[r.Tipo] = a
		}
		a.n++
		a.valor = a.valor.Add(r.Total)
	}

	out := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("RESUMEN (solo completados)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, tipo := range []string{entity.MovEntrada, entity.MovSalida, entity.MovAjuste, entity.MovDevolucion} {
		a, ok := totales[tipo]
		if !ok {
			continue
		}
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(tipo, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d movimientos", a.n), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New("$"+formatMoney(a.valor.StringFixed(0)), props.Text{
				Size: 8, Top: 1, Align: align.Right,
			})),
		))
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
