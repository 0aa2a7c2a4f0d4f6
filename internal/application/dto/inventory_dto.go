package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para AJUSTE, quantity es el stock objetivo (absoluto), no un delta.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  int              `json:"quantity"`
	Reason    string           `json:"reason,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	Type             string           `json:"type"`
	Quantity         int              `json:"quantity"`
	Delta            int              `json:"delta"`
	PreviousQuantity int              `json:"previous_quantity"`
	NewQuantity      int              `json:"new_quantity"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason           string           `json:"reason,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	ActorID          string           `json:"actor_id"`
	CreatedAt        time.Time        `json:"created_at"`
}

// RegisterMovementResponse producto actualizado + movimiento creado.
type RegisterMovementResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// LedgerAuditResponse resultado de reconstruir el stock desde el libro de inventario.
type LedgerAuditResponse struct {
	ProductID       string `json:"product_id"`
	InitialQuantity int    `json:"initial_quantity"`
	MovementCount   int    `json:"movement_count"`
	ReplayedQty     int    `json:"replayed_quantity"`
	CurrentQuantity int    `json:"current_quantity"`
	Consistent      bool   `json:"consistent"`
}

// ConsumeSuppliesResponse movimientos de salida generados al ejecutar un servicio.
type ConsumeSuppliesResponse struct {
	ServiceID string             `json:"service_id"`
	Movements []MovementResponse `json:"movements"`
}

// StockValuationResponse valorización del inventario.
type StockValuationResponse struct {
	ProductCount int             `json:"product_count"`
	TotalUnits   int             `json:"total_units"`
	CostValue    decimal.Decimal `json:"cost_value"`   // Σ quantity × unit_cost
	RetailValue  decimal.Decimal `json:"retail_value"` // Σ quantity × sale_price
}
