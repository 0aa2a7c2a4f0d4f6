package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDirection sentido del movimiento de caja.
type CashDirection string

const (
	CashInflow  CashDirection = "INGRESO"
	CashOutflow CashDirection = "EGRESO"
)

// Valid indica si el sentido es INGRESO o EGRESO.
func (d CashDirection) Valid() bool {
	return d == CashInflow || d == CashOutflow
}

// Categorías de caja usadas por el sistema.
const (
	CashCategorySale = "SALE"
)

// Tipos de documento de origen de un movimiento de caja.
const (
	ReferenceKindSale = "sale"
)

// CashFlowEntry movimiento del libro de caja (append-only).
// Si ReferenceID no está vacío, el registro fue generado por un documento (p. ej. una venta).
type CashFlowEntry struct {
	ID            string
	Date          time.Time
	Direction     CashDirection
	Category      string
	Description   string
	Amount        decimal.Decimal
	ReferenceKind string
	ReferenceID   string
	ActorID       string
	CreatedAt     time.Time
}

// SystemGenerated indica si el registro tiene referencia a un documento de origen.
func (e *CashFlowEntry) SystemGenerated() bool {
	return e.ReferenceID != ""
}
