package dto

import "github.com/jhoicas/clinica-vet-api/internal/domain/entity"

// FromProduct convierte la entidad en su representación de salida.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Quantity:         p.Quantity,
		UnitCost:         p.UnitCost,
		SalePrice:        p.SalePrice,
		ReorderThreshold: p.ReorderThreshold,
		ExpiryDate:       p.ExpiryDate,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// FromMovement convierte un movimiento de inventario.
func FromMovement(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             string(m.Type),
		Quantity:         m.Quantity,
		Delta:            m.Delta(),
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		UnitCost:         m.UnitCost,
		Reason:           m.Reason,
		Reference:        m.Reference,
		ActorID:          m.ActorID,
		CreatedAt:        m.CreatedAt,
	}
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.InventoryMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromService convierte un servicio.
func FromService(s *entity.Service) ServiceResponse {
	supplies := make([]ServiceSupplyDTO, 0, len(s.Supplies))
	for _, sp := range s.Supplies {
		supplies = append(supplies, ServiceSupplyDTO{ProductID: sp.ProductID, Quantity: sp.Quantity})
	}
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		OperatingCost:   s.OperatingCost,
		DurationMinutes: s.DurationMinutes,
		Supplies:        supplies,
		Active:          s.Active,
	}
}

func fromLines(lines []*entity.SaleLine) []SaleLineResponse {
	out := make([]SaleLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, SaleLineResponse{
			ID:        l.ID,
			Kind:      string(l.Kind),
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}

// FromSale convierte una venta con sus líneas.
func FromSale(s *entity.Sale) *SaleResponse {
	return &SaleResponse{
		ID:            s.ID,
		Products:      fromLines(s.ProductLines),
		Services:      fromLines(s.ServiceLines),
		Subtotal:      s.Subtotal,
		TaxRate:       s.TaxRate,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		ClientID:      s.ClientID,
		PetID:         s.PetID,
		AppointmentID: s.AppointmentID,
		InvoiceNumber: s.InvoiceNumber,
		ActorID:       s.ActorID,
		CreatedAt:     s.CreatedAt,
	}
}

// FromCashFlowEntry convierte un movimiento de caja.
func FromCashFlowEntry(e *entity.CashFlowEntry) CashFlowEntryResponse {
	return CashFlowEntryResponse{
		ID:              e.ID,
		Date:            e.Date,
		Direction:       string(e.Direction),
		Category:        e.Category,
		Description:     e.Description,
		Amount:          e.Amount,
		ReferenceKind:   e.ReferenceKind,
		ReferenceID:     e.ReferenceID,
		SystemGenerated: e.SystemGenerated(),
		ActorID:         e.ActorID,
	}
}
