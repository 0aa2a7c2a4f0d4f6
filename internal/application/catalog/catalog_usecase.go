// Package catalog da de alta y consulta productos y servicios. El stock solo cambia vía el libro de inventario.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/pricing"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo.
type UseCase struct {
	products repository.ProductRepository
	services repository.ServiceRepository
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, services repository.ServiceRepository) *UseCase {
	return &UseCase{products: products, services: services, now: time.Now}
}

// CreateProduct crea un producto. Quantity queda como stock inicial del libro; no genera movimiento.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity < 0 || in.ReorderThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() || in.SalePrice.IsNegative() || !pricing.IsCents(in.SalePrice) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             name,
		Category:         strings.TrimSpace(in.Category),
		Quantity:         in.Quantity,
		InitialQuantity:  in.Quantity,
		UnitCost:         in.UnitCost,
		SalePrice:        in.SalePrice,
		ReorderThreshold: in.ReorderThreshold,
		ExpiryDate:       in.ExpiryDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateService registra un servicio con sus insumos. Cada insumo debe apuntar a un producto existente.
func (uc *UseCase) CreateService(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.DurationMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BasePrice.IsNegative() || in.OperatingCost.IsNegative() || !pricing.IsCents(in.BasePrice) {
		return nil, domain.ErrInvalidInput
	}
	supplies := make([]entity.ServiceSupply, 0, len(in.Supplies))
	for i, s := range in.Supplies {
		if s.ProductID == "" || s.Quantity <= 0 {
			return nil, domain.NewLineError(domain.ErrInvalidInput, i, s.ProductID, "")
		}
		p, err := uc.products.GetByID(ctx, s.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NewLineError(domain.ErrProductNotFound, i, s.ProductID, "")
		}
		supplies = append(supplies, entity.ServiceSupply{ProductID: s.ProductID, Quantity: s.Quantity})
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now()
	service := &entity.Service{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		BasePrice:       in.BasePrice,
		OperatingCost:   in.OperatingCost,
		DurationMinutes: in.DurationMinutes,
		Supplies:        supplies,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.services.Create(ctx, service); err != nil {
		return nil, err
	}
	out := dto.FromService(service)
	return &out, nil
}

// GetService obtiene un servicio por ID.
func (uc *UseCase) GetService(ctx context.Context, id string) (*dto.ServiceResponse, error) {
	service, err := uc.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrServiceNotFound
	}
	out := dto.FromService(service)
	return &out, nil
}

// ListServices lista servicios con paginación.
func (uc *UseCase) ListServices(ctx context.Context, page dto.PageRequest) (*dto.ServiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.services.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromService(s))
	}
	return &dto.ServiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
