package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// PricingConfig parámetros de cálculo y política de la venta.
type PricingConfig struct {
	TaxRate decimal.Decimal
	// ConsumeServiceSupplies descuenta los insumos de cada servicio vendido en la misma transacción.
	// Por defecto la venta solo factura y el consumo se registra aparte.
	ConsumeServiceSupplies bool
}

// ReceiptGenerator genera la representación gráfica de una venta.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
