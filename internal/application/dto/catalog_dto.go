package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para dar de alta un producto. Quantity queda como stock inicial.
type CreateProductRequest struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	ReorderThreshold int             `json:"reorder_threshold"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	ReorderThreshold int             `json:"reorder_threshold"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ServiceSupplyDTO insumo de un servicio.
type ServiceSupplyDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateServiceRequest entrada para registrar un servicio clínico.
type CreateServiceRequest struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	BasePrice       decimal.Decimal    `json:"base_price"`
	OperatingCost   decimal.Decimal    `json:"operating_cost"`
	DurationMinutes int                `json:"duration_minutes"`
	Supplies        []ServiceSupplyDTO `json:"supplies"`
	Active          *bool              `json:"active,omitempty"` // por defecto true
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	BasePrice       decimal.Decimal    `json:"base_price"`
	OperatingCost   decimal.Decimal    `json:"operating_cost"`
	DurationMinutes int                `json:"duration_minutes"`
	Supplies        []ServiceSupplyDTO `json:"supplies"`
	Active          bool               `json:"active"`
}

// ServiceListResponse lista paginada de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
