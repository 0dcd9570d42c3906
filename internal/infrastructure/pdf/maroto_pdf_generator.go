// Package pdf genera el informe de movimientos de inventario en PDF.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Firma + datos       │  Título + fecha de emisión   │
//	│  FILTROS aplicados                                          │
//	│  TABLA: Fecha | Tipo | Producto | Cant. | Saldo | Bodegas…  │
//	│  TOTALES por tipo de movimiento                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var kindLabels = map[string]string{
	entity.MovementEntry:    "Entrada",
	entity.MovementExit:     "Salida",
	entity.MovementTransfer: "Transferencia",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.ReportRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ inventory.ReportRenderer = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderMovementReport(_ context.Context, report inventory.MovementReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Informe de movimientos", true).
		WithAuthor(report.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filtersRow(report.Query))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: firma (izq) y título + fecha de emisión (der).
func headerRow(report inventory.MovementReport) core.Row {
	c := report.Company
	return row.New(18).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Vergi No: %s   |   Tel: %s   |   %s",
				nonEmpty(c.TaxID, "—"), nonEmpty(c.Phone, "—"), nonEmpty(c.Address, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INFORME DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(report.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// filtersRow: resumen de los filtros con que se obtuvo el listado.
func filtersRow(q inventory.MovementQuery) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Filtros: "+describeQuery(q), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 1, align.Left),
		h("Tipo", 1, align.Left),
		h("Producto", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Origen", 2, align.Left),
		h("Destino", 1, align.Left),
		h("Contraparte", 2, align.Left),
		h("Usuario", 1, align.Left),
	)
}

// tableRows: una fila por movimiento, con fondo alterno.
func tableRows(views []inventory.MovementView) []core.Row {
	result := make([]core.Row, 0, len(views))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for i, v := range views {
		mv := v.Movement
		r := row.New(6).Add(
			cell(mv.Timestamp.Format("02/01/2006"), 1, align.Left),
			cell(kindLabel(mv.Kind), 1, align.Left),
			cell(v.ProductName, 2, align.Left),
			cell(mv.Quantity.String()+" "+v.Unit, 1, align.Right),
			cell(mv.ResultingQuantity.String(), 1, align.Right),
			cell(v.SourceWarehouseName, 2, align.Left),
			cell(v.DestinationWarehouseName, 1, align.Left),
			cell(v.CounterpartyName, 2, align.Left),
			cell(v.UserName, 1, align.Left),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	if len(views) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos para los filtros indicados.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	return result
}

// totalsRow: cantidad total por tipo de movimiento.
func totalsRow(report inventory.MovementReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	var labels, values []string
	for _, kind := range []string{entity.MovementEntry, entity.MovementExit, entity.MovementTransfer} {
		if total, ok := report.Totals[kind]; ok {
			labels = append(labels, kindLabel(kind)+":")
			values = append(values, total.String())
		}
	}
	labels = append(labels, "Movimientos:")
	values = append(values, fmt.Sprint(len(report.Rows)))
	return row.New(float64(6*len(labels)+2)).Add(
		col.New(6),
		col.New(3).Add(label(strings.Join(labels, "\n"))),
		col.New(3).Add(text.New(strings.Join(values, "\n"), props.Text{Size: 9, Align: align.Right, Right: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(kind string) string {
	if l, ok := kindLabels[kind]; ok {
		return l
	}
	return kind
}

func describeQuery(q inventory.MovementQuery) string {
	var parts []string
	if q.Kind != "" {
		parts = append(parts, "tipo="+kindLabel(q.Kind))
	}
	if q.From != nil {
		parts = append(parts, "desde="+q.From.Format("02/01/2006"))
	}
	if q.To != nil {
		parts = append(parts, "hasta="+q.To.Format("02/01/2006"))
	}
	if q.WarehouseID != "" {
		parts = append(parts, "bodega="+q.WarehouseID)
	}
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("búsqueda=%q", q.Search))
	}
	if len(parts) == 0 {
		return "ninguno"
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
