// Package pdf genera el comprobante de venta de la clínica con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la clínica │ N° comprobante + Fecha      │
//	│  REFERENCIAS: cliente / mascota / cita / medio de pago      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Tipo | P.Unit | Subtotal       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto (tasa) / TOTAL                │
//	│  FOOTER: QR con el ID de la venta                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/clinica-vet-api/internal/application/billing"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

var _ billing.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa billing.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	clinicName string
}

// NewReceiptGenerator construye el generador con el nombre que encabeza el comprobante.
func NewReceiptGenerator(clinicName string) *ReceiptGenerator {
	return &ReceiptGenerator{clinicName: clinicName}
}

// GenerateSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateSaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.clinicName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(referencesRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(sale.Lines())...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	number := sale.InvoiceNumber
	if number == "" {
		number = shortID(sale.ID)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.clinicName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func referencesRow(sale *entity.Sale) core.Row {
	refs := fmt.Sprintf("Cliente: %s   |   Mascota: %s   |   Cita: %s   |   Pago: %s",
		nonEmpty(sale.ClientID, "-"),
		nonEmpty(sale.PetID, "-"),
		nonEmpty(sale.AppointmentID, "-"),
		paymentLabel(sale.PaymentMethod),
	)
	return row.New(8).Add(col.New(12).Add(
		text.New(refs, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Tipo", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableLineRows(lines []*entity.SaleLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		kind := "Producto"
		if l.Kind == entity.LineKindService {
			kind = "Servicio"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kind, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2})
	}
	value := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Align: align.Right, Right: 1})
	}
	rate := sale.TaxRate.Mul(decimal.NewFromInt(100)).StringFixed(0)
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 9),
			label(fmt.Sprintf("Impuesto (%s%%):", rate), 9),
			label("TOTAL:", 10),
		),
		col.New(3).Add(
			value(formatMoney(sale.Subtotal), 9),
			value(formatMoney(sale.Tax), 9),
			value(formatMoney(sale.Total), 10),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Venta "+sale.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Gracias por confiar en nosotros el cuidado de su mascota.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func paymentLabel(m entity.PaymentMethod) string {
	switch m {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentCard:
		return "Tarjeta"
	case entity.PaymentTransfer:
		return "Transferencia"
	default:
		return "Otro"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney agrega separador de miles y dos decimales.
// Ej: 25000 → "$25,000.00", 1234.5 → "$1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
