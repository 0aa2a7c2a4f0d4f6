package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeInflow     MovementType = "ENTRADA" // entrada
	MovementTypeOutflow    MovementType = "SALIDA"  // salida
	MovementTypeAdjustment MovementType = "AJUSTE"  // corrección manual a un valor absoluto
)

// Valid indica si el tipo es uno de los tres conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeInflow, MovementTypeOutflow, MovementTypeAdjustment:
		return true
	}
	return false
}

// InventoryMovement es un registro inmutable del libro de inventario.
// Quantity es siempre la magnitud (positiva); el signo se obtiene con Delta.
type InventoryMovement struct {
	ID               string
	ProductID        string
	Type             MovementType
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	UnitCost         *decimal.Decimal // solo entradas con costo informado
	Reason           string
	Reference        string // ID de la venta o del servicio que originó el movimiento
	ActorID          string
	CreatedAt        time.Time
}

// Delta devuelve el efecto con signo del movimiento sobre el stock.
func (m *InventoryMovement) Delta() int {
	switch m.Type {
	case MovementTypeInflow:
		return m.Quantity
	case MovementTypeOutflow:
		return -m.Quantity
	case MovementTypeAdjustment:
		if m.NewQuantity < m.PreviousQuantity {
			return -m.Quantity
		}
		return m.Quantity
	}
	return 0
}

// ReplayQuantity aplica los movimientos (en orden cronológico) sobre el stock inicial.
func ReplayQuantity(initial int, movements []*InventoryMovement) int {
	qty := initial
	for _, m := range movements {
		qty += m.Delta()
	}
	return qty
}
