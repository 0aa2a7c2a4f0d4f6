package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineKind discrimina las líneas de una venta.
type LineKind string

const (
	LineKindProduct LineKind = "PRODUCT"
	LineKindService LineKind = "SERVICE"
)

// PaymentMethod medio de pago de la venta.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

// Valid indica si el medio de pago es soportado.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// SaleLine línea de venta. UnitPrice se copia del catálogo (o del override) al momento de vender.
type SaleLine struct {
	ID        string
	SaleID    string
	Kind      LineKind
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Position  int
}

// Sale cabecera de una venta. Inmutable una vez creada.
type Sale struct {
	ID            string
	ProductLines  []*SaleLine
	ServiceLines  []*SaleLine
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	ClientID      string
	PetID         string
	AppointmentID string
	InvoiceNumber string
	ActorID       string
	CreatedAt     time.Time
}

// Lines devuelve todas las líneas, primero productos y luego servicios.
func (s *Sale) Lines() []*SaleLine {
	out := make([]*SaleLine, 0, len(s.ProductLines)+len(s.ServiceLines))
	out = append(out, s.ProductLines...)
	return append(out, s.ServiceLines...)
}
