// Package pricing calcula los totales de una venta a partir de sus líneas.
package pricing

import "github.com/shopspring/decimal"

// DefaultTaxRate tasa por defecto de SALE_TAX_RATE.
var DefaultTaxRate = decimal.RequireFromString("0.15")

// IsCents indica si el monto no tiene más de dos decimales significativos.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// Line cantidad y precio unitario de una línea.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal precio unitario por cantidad.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals resultado del cálculo.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Compute: subtotal = Σ(precio × cantidad), impuesto = round(subtotal × tasa, 2), total = subtotal + impuesto.
func Compute(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
