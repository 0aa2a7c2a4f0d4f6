package repository

import (
	"context"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// InventoryMovementRepository puerto del libro de inventario. Solo inserción y lectura.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct devuelve los movimientos del producto en orden cronológico ascendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.InventoryMovement, error)
}
