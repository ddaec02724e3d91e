// Package pdf implementa la generación del Pedido de Compra imprimible a
// partir del reporte de stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de emisión                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descrição | Fornecedor | Qtde. a comprar   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda + espacio para firma del responsable       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ usecase.PurchaseOrderGenerator = (*PurchaseOrderPDF)(nil)

// PurchaseOrderPDF genera el Pedido de Compra usando Maroto v2.
type PurchaseOrderPDF struct{}

// NewPurchaseOrderPDF construye el generador.
func NewPurchaseOrderPDF() *PurchaseOrderPDF { return &PurchaseOrderPDF{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *PurchaseOrderPDF) Generate(generatedAt time.Time, lines []dto.PurchaseOrderLine) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido de Compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de emisión (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("PEDIDO DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Itens abaixo do estoque mínimo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descrição", 5, align.Left),
		h("Fornecedor", 3, align.Left),
		h("Qtde. a comprar", 2, align.Right),
	)
}

// tableLineRows: una fila por ítem del pedido.
func tableLineRows(lines []dto.PurchaseOrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Code, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(5).Add(text.New(l.Description, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(l.Supplier, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(l.OrderNote, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// footerRows: leyenda y espacio para firma.
func footerRows() []core.Row {
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento gerado pelo sistema de almoxarifado. Confira as quantidades antes de enviar ao fornecedor.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
		row.New(20).Add(
			col.New(6),
			col.New(6).Add(
				text.New("_____________________________________", props.Text{
					Size: 9, Align: align.Center, Top: 10,
				}),
				text.New("Responsável pelo almoxarifado", props.Text{
					Size: 8, Align: align.Center, Top: 15, Color: colorGray,
				}),
			),
		),
	}
}
