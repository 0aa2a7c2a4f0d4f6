package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem de inventario de la clínica (medicamento, insumo, alimento...).
// Quantity es un total acumulado derivado de los movimientos; solo cambia vía el libro de inventario.
type Product struct {
	ID               string
	Name             string
	Category         string
	Quantity         int
	InitialQuantity  int // stock con el que se dio de alta; base para reconstruir desde movimientos
	UnitCost         decimal.Decimal // costo promedio ponderado
	SalePrice        decimal.Decimal
	ReorderThreshold int
	ExpiryDate       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BelowReorder indica si el stock está en o por debajo del umbral de reposición.
func (p *Product) BelowReorder() bool {
	return p.Quantity <= p.ReorderThreshold
}
