package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// StockReportUseCase consultas de solo lectura sobre el catálogo: bajo stock, por vencer y valorización.
type StockReportUseCase struct {
	products repository.ProductRepository
	now      func() time.Time
}

// NewStockReportUseCase construye el caso de uso de reportes.
func NewStockReportUseCase(products repository.ProductRepository) *StockReportUseCase {
	return &StockReportUseCase{products: products, now: time.Now}
}

// LowStock productos en o por debajo de su umbral de reposición.
func (uc *StockReportUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// Expiring productos con stock cuya fecha de vencimiento cae dentro de los próximos withinDays días
// (incluye los ya vencidos).
func (uc *StockReportUseCase) Expiring(ctx context.Context, withinDays int) ([]dto.ProductResponse, error) {
	if withinDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	limit := uc.now().AddDate(0, 0, withinDays)
	list, err := uc.products.ListExpiringBefore(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if p.Quantity == 0 {
			continue
		}
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// Valuation suma el valor del inventario a costo y a precio de venta.
func (uc *StockReportUseCase) Valuation(ctx context.Context) (*dto.StockValuationResponse, error) {
	const pageSize = 500
	res := &dto.StockValuationResponse{CostValue: decimal.Zero, RetailValue: decimal.Zero}
	for offset := 0; ; offset += pageSize {
		list, err := uc.products.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			qty := decimal.NewFromInt(int64(p.Quantity))
			res.ProductCount++
			res.TotalUnits += p.Quantity
			res.CostValue = res.CostValue.Add(qty.Mul(p.UnitCost))
			res.RetailValue = res.RetailValue.Add(qty.Mul(p.SalePrice))
		}
		if len(list) < pageSize {
			break
		}
	}
	res.CostValue = res.CostValue.Round(2)
	res.RetailValue = res.RetailValue.Round(2)
	return res, nil
}
