package repository

import (
	"context"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// ServiceRepository puerto del catálogo de servicios (incluye sus insumos).
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Service, error)
}
