// Package pdf implementa el documento imprimible de una operación usando
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título por tipo  │  Referencia + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN / DESTINO / CONTACTO / RESPONSABLE                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Unidad | Cantidad                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + estado de la operación                             │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var documentTitles = map[entity.OperationType]string{
	entity.OperationTypeReceipt:    "COMPROBANTE DE RECEPCIÓN",
	entity.OperationTypeDelivery:   "ALBARÁN DE ENTREGA",
	entity.OperationTypeTransfer:   "HOJA DE TRASLADO",
	entity.OperationTypeAdjustment: "ACTA DE AJUSTE DE INVENTARIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ operations.DocumentGenerator = (*MarotoDocumentGenerator)(nil)

// MarotoDocumentGenerator implementa operations.DocumentGenerator usando Maroto v2.
type MarotoDocumentGenerator struct{}

// NewMarotoDocumentGenerator construye el generador.
func NewMarotoDocumentGenerator() *MarotoDocumentGenerator { return &MarotoDocumentGenerator{} }

// GenerateOperationDocument genera el PDF y devuelve sus bytes.
func (g *MarotoDocumentGenerator) GenerateOperationDocument(_ context.Context, data operations.DocumentData) ([]byte, error) {
	op := data.Operation
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Operación "+op.Reference, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(endpointsRow(op, data.FromLocation, data.ToLocation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(op))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título por tipo (izq), referencia + fecha (der).
func headerRow(op *entity.Operation) core.Row {
	title := documentTitles[op.Type]
	if title == "" {
		title = "OPERACIÓN DE INVENTARIO"
	}
	fecha := op.CreatedAt.Format("02/01/2006")
	if op.ScheduleDate != nil {
		fecha = op.ScheduleDate.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("StockMaster", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(op.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// endpointsRow: origen, destino y contacto de la operación.
func endpointsRow(op *entity.Operation, from, to string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Origen: %s   |   Destino: %s",
				nonEmpty(from, "Externo"),
				nonEmpty(to, "Externo"),
			), props.Text{Size: 9, Top: 2}),
			text.New(fmt.Sprintf("Contacto: %s   |   Responsable: %s",
				nonEmpty(op.ContactName, "—"),
				nonEmpty(op.ResponsibleID, "—"),
			), props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

// tableLineRows: una fila por línea de la operación.
func tableLineRows(lines []operations.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// footerRow: notas y estado.
func footerRow(op *entity.Operation) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Notas: "+nonEmpty(op.Notes, "—"), props.Text{Size: 8, Top: 2, Color: colorGray}),
			text.New("Estado: "+string(op.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 8,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
