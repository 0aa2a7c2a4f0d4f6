package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito. UnitPrice es un override opcional del precio de catálogo.
type SaleItemRequest struct {
	ID        string           `json:"id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Products      []SaleItemRequest `json:"products"`
	Services      []SaleItemRequest `json:"services"`
	PaymentMethod string            `json:"payment_method"`
	ClientID      string            `json:"client_id,omitempty"`
	PetID         string            `json:"pet_id,omitempty"`
	AppointmentID string            `json:"appointment_id,omitempty"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	ActorID       string            `json:"-"` // se toma del token
}

// SaleLineResponse línea con el precio vigente al momento de la venta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta persistida.
type SaleResponse struct {
	ID            string             `json:"id"`
	Products      []SaleLineResponse `json:"products"`
	Services      []SaleLineResponse `json:"services"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	ClientID      string             `json:"client_id,omitempty"`
	PetID         string             `json:"pet_id,omitempty"`
	AppointmentID string             `json:"appointment_id,omitempty"`
	InvoiceNumber string             `json:"invoice_number,omitempty"`
	ActorID       string             `json:"actor_id"`
	CreatedAt     time.Time          `json:"created_at"`
}
