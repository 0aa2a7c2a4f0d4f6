package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta ya registrada.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales repository.SaleRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator}
}

// ReceiptPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//   - domain.ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) ReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("venta_%s.pdf", sale.ID)
	if sale.InvoiceNumber != "" {
		filename = fmt.Sprintf("venta_%s.pdf", sale.InvoiceNumber)
	}
	return pdfBytes, filename, nil
}
