package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceSupply insumo consumido por cada ejecución de un servicio.
type ServiceSupply struct {
	ProductID string
	Quantity  int
}

// Service servicio clínico facturable (consulta, vacunación, cirugía...).
type Service struct {
	ID              string
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	OperatingCost   decimal.Decimal
	DurationMinutes int
	Supplies        []ServiceSupply
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
