package billing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinica-vet-api/internal/application/cashflow"
	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/application/inventory"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/pricing"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/memory"
)

var (
	errCashDown = errors.New("caja no disponible")
	errDBDown   = errors.New("db down")
)

var taxed = PricingConfig{TaxRate: pricing.DefaultTaxRate}

// failingCashUoW envuelve el store y hace fallar la escritura en caja.
type failingCashUoW struct {
	store *memory.Store
}

func (u *failingCashUoW) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	return u.store.Run(ctx, func(tx repository.TxRepos) error {
		tx.CashFlow = failingCashRepo{tx.CashFlow}
		return fn(tx)
	})
}

type failingCashRepo struct {
	repository.CashFlowRepository
}

func (failingCashRepo) Create(context.Context, *entity.CashFlowEntry) error { return errCashDown }

type fixture struct {
	store *memory.Store
	uc    *CreateSaleUseCase
}

func newFixture(t *testing.T, cfg PricingConfig, wrap func(*memory.Store) repository.UnitOfWork) *fixture {
	t.Helper()
	store := memory.New()
	var uow repository.UnitOfWork = store
	if wrap != nil {
		uow = wrap(store)
	}
	repos := store.Repos()
	log := zerolog.Nop()
	ledger := inventory.NewRegisterMovementUseCase(uow, repos.Products, repos.Movements, log)
	supplies := inventory.NewSupplyConsumptionUseCase(uow, repos.Services, ledger, log)
	cash := cashflow.NewLedgerUseCase(uow, repos.CashFlow, log)
	return &fixture{
		store: store,
		uc:    NewCreateSaleUseCase(uow, repos, ledger, supplies, cash, cfg, log),
	}
}

func (f *fixture) product(t *testing.T, id string, qty int, price string) {
	t.Helper()
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: "Producto " + id, Quantity: qty, InitialQuantity: qty,
		UnitCost: decimal.NewFromInt(1), SalePrice: decimal.RequireFromString(price),
	}))
}

func (f *fixture) service(t *testing.T, id string, active bool, price string, supplies ...entity.ServiceSupply) {
	t.Helper()
	require.NoError(t, f.store.Repos().Services.Create(context.Background(), &entity.Service{
		ID: id, Name: "Servicio " + id, BasePrice: decimal.RequireFromString(price), Active: active, Supplies: supplies,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) assertNoWrites(t *testing.T, productIDs ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range productIDs {
		movs, err := f.store.Repos().Movements.ListByProduct(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, movs, "movimientos de %s", id)
	}
	entries, err := f.store.Repos().CashFlow.List(ctx, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateSale_SingleProductCash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 10, "10.00")

	sale, err := f.uc.CreateSale(ctx, dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 2, UnitPrice: price("10.00")}},
		PaymentMethod: "cash",
		ActorID:       "u1",
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, sale.Tax.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("23.00")))
	assert.Equal(t, 8, f.stock(t, "P1"))

	movs, err := f.store.Repos().Movements.ListByReference(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOutflow, movs[0].Type)
	assert.Equal(t, 2, movs[0].Quantity)
	assert.Equal(t, DirectSaleReason, movs[0].Reason)

	entries, err := f.store.Repos().CashFlow.ListByReference(ctx, entity.ReferenceKindSale, sale.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.CashInflow, entries[0].Direction)
	assert.Equal(t, entity.CashCategorySale, entries[0].Category)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("23.00")))

	got, err := f.uc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
}

func TestCreateSale_TotalsInvariant(t *testing.T) {
	f := newFixture(t, taxed, nil)
	f.product(t, "a", 10, "3.33")
	f.product(t, "b", 10, "7.10")
	f.service(t, "s", true, "12.49")

	sale, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "a", Quantity: 3}, {ID: "b", Quantity: 1, UnitPrice: price("5.00")}},
		Services:      []dto.SaleItemRequest{{ID: "s", Quantity: 2}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, l := range append(sale.Products, sale.Services...) {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, sale.Subtotal.Equal(sum))
	assert.True(t, sale.Tax.Equal(sale.Subtotal.Mul(decimal.RequireFromString("0.15")).Round(2)))
	assert.True(t, sale.Total.Equal(sale.Subtotal.Add(sale.Tax)))
	assert.True(t, sale.Products[1].UnitPrice.Equal(decimal.NewFromInt(5)))
}

func TestCreateSale_InactiveServiceLeavesStock(t *testing.T) {
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10")
	f.service(t, "S1", false, "20")

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 1}},
		Services:      []dto.SaleItemRequest{{ID: "S1", Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceInactive)
	le, ok := domain.AsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, "S1", le.EntityID)
	assert.Equal(t, 5, f.stock(t, "P1"))
	f.assertNoWrites(t, "P1")
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10")
	f.service(t, "S1", true, "20")

	cases := []struct {
		name string
		req  dto.CreateSaleRequest
		want error
	}{
		{"carrito vacío", dto.CreateSaleRequest{PaymentMethod: "cash"}, domain.ErrEmptyCart},
		{"medio de pago", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "P1", Quantity: 1}}, PaymentMethod: "bitcoin"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "P1"}}, PaymentMethod: "cash"}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "P1", Quantity: 1, UnitPrice: price("-1")}}, PaymentMethod: "cash"}, domain.ErrInvalidInput},
		{"precio con tres decimales", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "P1", Quantity: 1, UnitPrice: price("9.999")}}, PaymentMethod: "cash"}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "X", Quantity: 1}}, PaymentMethod: "cash"}, domain.ErrProductNotFound},
		{"servicio inexistente", dto.CreateSaleRequest{Services: []dto.SaleItemRequest{{ID: "X", Quantity: 1}}, PaymentMethod: "cash"}, domain.ErrServiceNotFound},
		{"stock insuficiente", dto.CreateSaleRequest{Products: []dto.SaleItemRequest{{ID: "P1", Quantity: 6}}, PaymentMethod: "cash"}, domain.ErrInsufficientStock},
		{"cita inexistente", dto.CreateSaleRequest{Services: []dto.SaleItemRequest{{ID: "S1", Quantity: 1}}, PaymentMethod: "cash", AppointmentID: "X"}, domain.ErrAppointmentNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateSale(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 5, f.stock(t, "P1"))
	f.assertNoWrites(t, "P1")
}

func TestCreateSale_AggregatesDuplicateLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10")

	_, err := f.uc.CreateSale(ctx, dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 3}, {ID: "P1", Quantity: 3}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	le, ok := domain.AsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 1, le.Line)

	sale, err := f.uc.CreateSale(ctx, dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 2}, {ID: "P1", Quantity: 1, UnitPrice: price("8")}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.Len(t, sale.Products, 2)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(28)))

	movs, err := f.store.Repos().Movements.ListByReference(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, 2, f.stock(t, "P1"))
}

func TestCreateSale_CashFailureRollsBackEverything(t *testing.T) {
	f := newFixture(t, taxed, func(s *memory.Store) repository.UnitOfWork {
		return &failingCashUoW{store: s}
	})
	store := f.store
	f.product(t, "A", 5, "10")
	f.product(t, "B", 5, "4")
	store.AddAppointment(entity.Appointment{ID: "apt-1", Status: entity.AppointmentAccepted})

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "A", Quantity: 2}, {ID: "B", Quantity: 3}},
		PaymentMethod: "cash",
		AppointmentID: "apt-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.ErrorIs(t, err, errCashDown)

	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Equal(t, 5, f.stock(t, "B"))
	f.assertNoWrites(t, "A", "B")
	appt, err := store.Repos().Appointments.GetByID(context.Background(), "apt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentAccepted, appt.Status)
}

func TestCreateSale_CompletesAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, taxed, nil)
	f.service(t, "S1", true, "30")
	f.store.AddAppointment(entity.Appointment{ID: "apt-1", Status: entity.AppointmentAccepted})

	sale, err := f.uc.CreateSale(ctx, dto.CreateSaleRequest{
		Services:      []dto.SaleItemRequest{{ID: "S1", Quantity: 1}},
		PaymentMethod: "transfer",
		AppointmentID: "apt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "apt-1", sale.AppointmentID)

	appt, err := f.store.Repos().Appointments.GetByID(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCompleted, appt.Status)
}

func TestCreateSale_ServiceSuppliesPolicy(t *testing.T) {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Services:      []dto.SaleItemRequest{{ID: "S1", Quantity: 2}},
		PaymentMethod: "cash",
	}

	off := newFixture(t, taxed, nil)
	off.product(t, "vacuna", 5, "1")
	off.service(t, "S1", true, "20", entity.ServiceSupply{ProductID: "vacuna", Quantity: 1})
	_, err := off.uc.CreateSale(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 5, off.stock(t, "vacuna"))

	on := newFixture(t, PricingConfig{TaxRate: pricing.DefaultTaxRate, ConsumeServiceSupplies: true}, nil)
	on.product(t, "vacuna", 5, "1")
	on.service(t, "S1", true, "20", entity.ServiceSupply{ProductID: "vacuna", Quantity: 1})
	_, err = on.uc.CreateSale(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 3, on.stock(t, "vacuna"))

	short := newFixture(t, PricingConfig{TaxRate: pricing.DefaultTaxRate, ConsumeServiceSupplies: true}, nil)
	short.product(t, "vacuna", 1, "1")
	short.service(t, "S1", true, "20", entity.ServiceSupply{ProductID: "vacuna", Quantity: 1})
	_, err = short.uc.CreateSale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, short.stock(t, "vacuna"))
	short.assertNoWrites(t, "vacuna")
}

func TestCreateSale_NoOversellUnderConcurrency(t *testing.T) {
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
				Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 3}},
				PaymentMethod: "cash",
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 2, f.stock(t, "P1"))
}

func TestCreateSale_ZeroTaxRateIsApplied(t *testing.T) {
	f := newFixture(t, PricingConfig{TaxRate: decimal.Zero}, nil)
	f.product(t, "P1", 5, "10.00")

	sale, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 1}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.True(t, sale.Tax.IsZero())
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(10)))
}

func TestCreateSale_FreeSaleCommitsWithoutCashEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10.00")
	f.service(t, "S1", true, "0")
	f.store.AddAppointment(entity.Appointment{ID: "apt-1", Status: entity.AppointmentAccepted})

	sale, err := f.uc.CreateSale(ctx, dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 1, UnitPrice: price("0")}},
		Services:      []dto.SaleItemRequest{{ID: "S1", Quantity: 1}},
		PaymentMethod: "other",
		AppointmentID: "apt-1",
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.IsZero())
	assert.Equal(t, 4, f.stock(t, "P1"))

	got, err := f.uc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())

	entries, err := f.store.Repos().CashFlow.ListByReference(ctx, entity.ReferenceKindSale, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	appt, err := f.store.Repos().Appointments.GetByID(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCompleted, appt.Status)
}

func TestCreateSale_OverrideWithMoreThanTwoDecimalsNamesTheLine(t *testing.T) {
	f := newFixture(t, taxed, nil)
	f.product(t, "P1", 5, "10.00")
	f.service(t, "S1", true, "20")

	_, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 1}},
		Services:      []dto.SaleItemRequest{{ID: "S1", Quantity: 1, UnitPrice: price("19.995")}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	le, ok := domain.AsLineError(err)
	require.True(t, ok)
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, "S1", le.EntityID)
	f.assertNoWrites(t, "P1")
}

// failingProductRepo falla en las lecturas de la fase de validación.
type failingProductRepo struct {
	repository.ProductRepository
}

func (failingProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errDBDown
}

func TestCreateSale_StorageFailureWhileValidatingIsTransactionAborted(t *testing.T) {
	store := memory.New()
	repos := store.Repos()
	repos.Products = failingProductRepo{repos.Products}
	log := zerolog.Nop()
	ledger := inventory.NewRegisterMovementUseCase(store, repos.Products, repos.Movements, log)
	supplies := inventory.NewSupplyConsumptionUseCase(store, repos.Services, ledger, log)
	cash := cashflow.NewLedgerUseCase(store, repos.CashFlow, log)
	uc := NewCreateSaleUseCase(store, repos, ledger, supplies, cash, taxed, log)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Products:      []dto.SaleItemRequest{{ID: "P1", Quantity: 1}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrTransactionAborted)
	assert.ErrorIs(t, err, errDBDown)
}
