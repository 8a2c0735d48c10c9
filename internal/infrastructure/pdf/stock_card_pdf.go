// Package pdf genera el kardex (ficha de estoque) de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto + ID  │  Fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Descripción / Valor / Stock / Mínimo               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Tipo | Cantidad | Saldo | Usuario        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia del producto + leyenda         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ appinventory.StockCardRenderer = (*StockCardGenerator)(nil)

// StockCardGenerator implementa inventory.StockCardRenderer usando Maroto v2.
type StockCardGenerator struct {
	now func() time.Time
}

// NewStockCardGenerator construye el generador.
func NewStockCardGenerator() *StockCardGenerator {
	return &StockCardGenerator{now: time.Now}
}

// RenderStockCard genera el PDF y devuelve sus bytes.
func (g *StockCardGenerator) RenderStockCard(
	_ context.Context,
	card *appinventory.StockCard,
	formatDate func(*entity.Movement) string,
) ([]byte, error) {
	if card == nil || card.Product == nil {
		return nil, fmt.Errorf("pdf: kardex sin producto")
	}
	p := card.Product

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+p.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(card.Movements) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	m.AddRows(movementRows(card.Movements, formatDate)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p, len(card.Movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del producto (izq) y fecha de emisión (der).
func headerRow(p *entity.Product, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Produto #%d", p.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("FICHA DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: descripción y cifras actuales del producto.
func summaryRow(p *entity.Product) core.Row {
	stockColor := colorGray
	if p.BelowMinimum() {
		stockColor = colorAlert
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(nonEmpty(p.Description, "-"), props.Text{Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Valor: R$ %s   |   Estoque atual: %d   |   Mínimo: %d",
				formatMoney(p.Value), p.Quantity, p.MinimumValue,
			), props.Text{Size: 8, Top: 8, Color: stockColor}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Data", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Quantidade", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Usuário", 2, align.Right),
	)
}

// movementRows: una fila por movimiento, en orden cronológico.
func movementRows(movs []*entity.Movement, formatDate func(*entity.Movement) string) []core.Row {
	result := make([]core.Row, 0, len(movs))
	for _, mv := range movs {
		sign := "+"
		if mv.Type == entity.MovementTypeSaida {
			sign = "-"
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", mv.ID), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatDate(mv), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(mv.Type, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%s%d", sign, mv.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", mv.Balance), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", mv.UserID), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: QR con la referencia del producto y leyenda.
func footerRow(p *entity.Product, count int) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("estoque:produto:%d", p.ID), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(fmt.Sprintf("%d movimentos. O saldo de cada linha é o estoque resultante após o movimento.", count), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles "." y decimales ",".
// Ej: 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
