package repository

import (
	"context"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// SaleRepository persiste ventas con sus líneas. No hay Update: las ventas son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
}
