package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashFlowEntryRequest movimiento de caja manual (sin documento de origen).
type CreateCashFlowEntryRequest struct {
	Date        *time.Time      `json:"date,omitempty"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowEntryResponse salida de un movimiento de caja.
type CashFlowEntryResponse struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Direction       string          `json:"direction"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceKind   string          `json:"reference_kind,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	SystemGenerated bool            `json:"system_generated"`
	ActorID         string          `json:"actor_id"`
}

// CashFlowListResponse lista paginada del libro de caja.
type CashFlowListResponse struct {
	Items []CashFlowEntryResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
