package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id string, qty int) {
	t.Helper()
	require.NoError(t, s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: id, Quantity: qty, InitialQuantity: qty, SalePrice: decimal.NewFromInt(1),
	}))
}

func TestRun_ConfirmaSiNoHayError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 5)

	err := s.Run(ctx, func(tx repository.TxRepos) error {
		return tx.Products.UpdateStock(ctx, "p1", 2, decimal.Zero)
	})
	require.NoError(t, err)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)
}

func TestRun_DescartaTodoSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 5)
	boom := errors.New("boom")

	err := s.Run(ctx, func(tx repository.TxRepos) error {
		require.NoError(t, tx.Products.UpdateStock(ctx, "p1", 0, decimal.Zero))
		require.NoError(t, tx.Movements.Create(ctx, &entity.InventoryMovement{ProductID: "p1", Type: entity.MovementTypeOutflow, Quantity: 5}))
		require.NoError(t, tx.CashFlow.Create(ctx, &entity.CashFlowEntry{Amount: decimal.NewFromInt(1)}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 5, p.Quantity)
	movs, _ := s.Repos().Movements.ListByProduct(ctx, "p1")
	assert.Empty(t, movs)
	cash, _ := s.Repos().CashFlow.List(ctx, nil, nil, 0, 0)
	assert.Empty(t, cash)
}

func TestRun_LecturasDentroDeLaTxVenSusEscrituras(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 5)

	err := s.Run(ctx, func(tx repository.TxRepos) error {
		require.NoError(t, tx.Products.UpdateStock(ctx, "p1", 4, decimal.Zero))
		p, err := tx.Products.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 4, p.Quantity)

		outside, _ := s.Repos().Products.GetByID(ctx, "p1")
		assert.Equal(t, 5, outside.Quantity, "fuera de la tx aún no se ve el cambio")
		return nil
	})
	require.NoError(t, err)
}

func TestRun_PanicLiberaElStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", 1)

	assert.Panics(t, func() {
		_ = s.Run(ctx, func(tx repository.TxRepos) error { panic("x") })
	})
	require.NoError(t, s.Run(ctx, func(tx repository.TxRepos) error { return nil }))
}

func TestSaleRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	sale := &entity.Sale{ProductLines: []*entity.SaleLine{{ItemID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(3)}}}
	require.NoError(t, s.Repos().Sales.Create(ctx, sale))
	require.NotEmpty(t, sale.ID)
	assert.Equal(t, sale.ID, sale.ProductLines[0].SaleID)

	got, err := s.Repos().Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	got.ProductLines[0].Quantity = 99

	again, _ := s.Repos().Sales.GetByID(ctx, sale.ID)
	assert.Equal(t, 1, again.ProductLines[0].Quantity)
}
