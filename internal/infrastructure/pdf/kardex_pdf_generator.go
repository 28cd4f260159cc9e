// Package pdf genera la representación imprimible del kardex de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SKU + Nombre        │  Periodo + Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO INICIAL                                               │
//	│  TABLA: Fecha | Tipo | Referencia | Entrada | Salida | Saldo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO FINAL                                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const dateLayout = "02/01/2006 15:04"

var kindLabels = map[entity.MovementKind]string{
	entity.MovementPurchaseIn:         "Compra",
	entity.MovementSaleOut:            "Venta",
	entity.MovementAdjustIn:           "Ajuste +",
	entity.MovementAdjustOut:          "Ajuste -",
	entity.MovementReturnFromPurchase: "Dev. proveedor",
	entity.MovementReturnFromCustomer: "Dev. cliente",
	entity.MovementConversionIn:       "Conversión +",
	entity.MovementConversionOut:      "Conversión -",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.KardexExporter = (*KardexPDFGenerator)(nil)

// KardexPDFGenerator implementa inventory.KardexExporter usando Maroto v2.
type KardexPDFGenerator struct {
	author string
}

// NewKardexPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewKardexPDFGenerator(author string) *KardexPDFGenerator {
	return &KardexPDFGenerator{author: author}
}

func (g *KardexPDFGenerator) ContentType() string { return "application/pdf" }
func (g *KardexPDFGenerator) Extension() string { return "pdf" }

// ExportKardex genera el PDF y devuelve sus bytes.
func (g *KardexPDFGenerator) ExportKardex(ctx context.Context, report *inventory.KardexReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+report.Product.SKU, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(balanceRow("SALDO INICIAL", report.Opening))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableEntryRows(report.Entries)...)
	if len(report.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow("SALDO FINAL", report.Closing))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: SKU + nombre (izq) y periodo + fecha de emisión (der).
func headerRow(report *inventory.KardexReport) core.Row {
	period := "Desde: " + formatBound(report.From, "inicio") + "   Hasta: " + formatBound(report.To, "hoy")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.Product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+report.Product.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+report.GeneratedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func balanceRow(label string, balance decimal.Decimal) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatQuantity(balance), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Referencia", 3, align.Left),
		h("Entrada", 1, align.Right),
		h("Salida", 2, align.Right),
		h("Saldo", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableEntryRows: una fila por movimiento, con filas alternas sombreadas.
func tableEntryRows(entries []entity.KardexEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for i, e := range entries {
		in, out := "", ""
		if e.Movement.Sign > 0 {
			in = formatQuantity(e.Movement.Quantity)
		} else {
			out = formatQuantity(e.Movement.Quantity)
		}
		r := row.New(7).Add(
			col.New(2).Add(text.New(e.Movement.OccurredAt.Format(dateLayout), props.Text{Size: 7.5, Top: 1.5, Left: 1})),
			col.New(2).Add(text.New(kindLabel(e.Movement.Kind), props.Text{Size: 7.5, Top: 1.5, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(e.Movement.Reference, "-"), props.Text{Size: 7.5, Top: 1.5, Left: 1})),
			col.New(1).Add(text.New(in, props.Text{Size: 7.5, Align: align.Right, Top: 1.5, Right: 1})),
			col.New(2).Add(text.New(out, props.Text{Size: 7.5, Align: align.Right, Top: 1.5, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(e.BalanceAfter), props.Text{
				Style: fontstyle.Bold, Size: 7.5, Align: align.Right, Top: 1.5, Right: 1,
			})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(k entity.MovementKind) string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

func formatBound(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity separa miles con punto y decimales con coma.
// Ej: 25000 → "25.000", -1234.5 → "-1.234,5"
func formatQuantity(d decimal.Decimal) string {
	s := d.Abs().String()
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
