package cashflow

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/memory"
)

func newLedger() (*memory.Store, *LedgerUseCase) {
	store := memory.New()
	return store, NewLedgerUseCase(store, store.Repos().CashFlow, zerolog.Nop())
}

func TestRegisterEntry_Manual(t *testing.T) {
	ctx := context.Background()
	_, uc := newLedger()

	out, err := uc.RegisterEntry(ctx, "u1", dto.CreateCashFlowEntryRequest{
		Direction:   "egreso",
		Category:    "SUPPLIES",
		Description: "compra de guantes",
		Amount:      decimal.RequireFromString("35.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "EGRESO", out.Direction)
	assert.False(t, out.SystemGenerated)
	assert.Empty(t, out.ReferenceID)
	assert.False(t, out.Date.IsZero())
}

func TestRegisterEntry_Validation(t *testing.T) {
	_, uc := newLedger()
	cases := map[string]dto.CreateCashFlowEntryRequest{
		"sentido":   {Direction: "X", Category: "A", Amount: decimal.NewFromInt(1)},
		"categoria": {Direction: "INGRESO", Amount: decimal.NewFromInt(1)},
		"monto":     {Direction: "INGRESO", Category: "A", Amount: decimal.Zero},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterEntry(context.Background(), "u1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPostInTx_RequiresCompleteReference(t *testing.T) {
	ctx := context.Background()
	store, uc := newLedger()
	err := store.Run(ctx, func(tx repository.TxRepos) error {
		return uc.PostInTx(ctx, tx, &entity.CashFlowEntry{
			Direction: entity.CashInflow, Category: entity.CashCategorySale,
			Amount: decimal.NewFromInt(5), ReferenceID: "sale-1",
		})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, uc := newLedger()

	manual, err := uc.RegisterEntry(ctx, "u1", dto.CreateCashFlowEntryRequest{
		Direction: "INGRESO", Category: "OTHER", Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	generated := &entity.CashFlowEntry{
		Direction: entity.CashInflow, Category: entity.CashCategorySale, Amount: decimal.NewFromInt(23),
		ReferenceKind: entity.ReferenceKindSale, ReferenceID: "sale-1",
	}
	require.NoError(t, store.Run(ctx, func(tx repository.TxRepos) error {
		return uc.PostInTx(ctx, tx, generated)
	}))

	assert.ErrorIs(t, uc.Delete(ctx, generated.ID), domain.ErrSystemGeneratedEntry)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, manual.ID))

	list, err := uc.List(ctx, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, generated.ID, list.Items[0].ID)
	assert.True(t, list.Items[0].SystemGenerated)
}

func TestList_DateRange(t *testing.T) {
	ctx := context.Background()
	_, uc := newLedger()
	day := func(d int) *time.Time {
		t := time.Date(2026, 5, d, 12, 0, 0, 0, time.UTC)
		return &t
	}
	for _, d := range []int{1, 5, 9} {
		_, err := uc.RegisterEntry(ctx, "u1", dto.CreateCashFlowEntryRequest{
			Date: day(d), Direction: "INGRESO", Category: "OTHER", Amount: decimal.NewFromInt(int64(d)),
		})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, day(2), day(9), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[0].Amount.Equal(decimal.NewFromInt(9)))

	_, err = uc.List(ctx, day(9), day(2), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
