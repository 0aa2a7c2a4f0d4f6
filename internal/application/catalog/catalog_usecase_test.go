package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/memory"
)

func newUseCase() *UseCase {
	repos := memory.New().Repos()
	return NewUseCase(repos.Products, repos.Services)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	out, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: " Antipulgas ", Quantity: 12, UnitCost: decimal.NewFromInt(3), SalePrice: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	assert.Equal(t, "Antipulgas", out.Name)
	assert.Equal(t, 12, out.Quantity)

	got, err := uc.GetProduct(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	_, err = uc.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "X", SalePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "X", SalePrice: decimal.RequireFromString("4.999")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListProducts(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestCreateService(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Jeringa", Quantity: 50})
	require.NoError(t, err)

	svc, err := uc.CreateService(ctx, dto.CreateServiceRequest{
		Name:      "Vacunación",
		BasePrice: decimal.NewFromInt(25),
		Supplies:  []dto.ServiceSupplyDTO{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, svc.Active)
	require.Len(t, svc.Supplies, 1)

	inactive := false
	off, err := uc.CreateService(ctx, dto.CreateServiceRequest{Name: "Baño", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, off.Active)

	_, err = uc.CreateService(ctx, dto.CreateServiceRequest{
		Name:     "Cirugía",
		Supplies: []dto.ServiceSupplyDTO{{ProductID: "nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CreateService(ctx, dto.CreateServiceRequest{Name: "Control", BasePrice: decimal.RequireFromString("10.001")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetService(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)

	list, err := uc.ListServices(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
