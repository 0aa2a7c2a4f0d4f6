package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/application/cashflow"
	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/application/inventory"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/pricing"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// DirectSaleReason motivo de las salidas de inventario generadas por una venta.
const DirectSaleReason = "direct sale"

// CreateSaleUseCase crea una venta con productos y servicios. Descuenta stock, completa la cita,
// guarda la venta y asienta el ingreso en caja dentro de una sola transacción.
type CreateSaleUseCase struct {
	uow          repository.UnitOfWork
	products     repository.ProductRepository
	services     repository.ServiceRepository
	appointments repository.AppointmentRepository
	sales        repository.SaleRepository
	ledger       *inventory.RegisterMovementUseCase
	supplies     *inventory.SupplyConsumptionUseCase
	cash         *cashflow.LedgerUseCase
	cfg          PricingConfig
	log          zerolog.Logger
	now          func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. cfg.TaxRate se aplica tal cual; cero es una tasa válida.
func NewCreateSaleUseCase(
	uow repository.UnitOfWork,
	repos repository.TxRepos,
	ledger *inventory.RegisterMovementUseCase,
	supplies *inventory.SupplyConsumptionUseCase,
	cash *cashflow.LedgerUseCase,
	cfg PricingConfig,
	log zerolog.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		uow:          uow,
		products:     repos.Products,
		services:     repos.Services,
		appointments: repos.Appointments,
		sales:        repos.Sales,
		ledger:       ledger,
		supplies:     supplies,
		cash:         cash,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// saleDraft venta resuelta (precios, nombres, cantidades agregadas) antes de escribir.
type saleDraft struct {
	sale         *entity.Sale
	productQty   map[string]int // cantidad total por producto
	productLine  map[string]int // primera línea del carrito que pidió el producto
	services     []*entity.Service
	serviceLines []*entity.SaleLine
}

// CreateSale valida el carrito, calcula totales y confirma la venta.
// Los errores de línea se devuelven como *domain.LineError (errors.Is con el sentinel funciona).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	draft, err := uc.prepare(ctx, in)
	if err != nil {
		uc.log.Warn().Err(err).Str("actor_id", in.ActorID).Msg("venta rechazada en validación")
		return nil, domain.ClassifyTxError(err)
	}
	sale := draft.sale

	err = uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		return uc.commit(ctx, tx, draft)
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("sale_id", sale.ID).
			Str("actor_id", in.ActorID).
			Msg("venta revertida")
		return nil, domain.ClassifyTxError(err)
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int("products", len(sale.ProductLines)).
		Int("services", len(sale.ServiceLines)).
		Str("total", sale.Total.StringFixed(2)).
		Str("payment_method", string(sale.PaymentMethod)).
		Str("actor_id", sale.ActorID).
		Msg("venta registrada")
	return dto.FromSale(sale), nil
}

// prepare corresponde a la fase de validación: solo lecturas, sin bloqueos.
// El stock se vuelve a comprobar con la fila bloqueada en commit.
func (uc *CreateSaleUseCase) prepare(ctx context.Context, in dto.CreateSaleRequest) (*saleDraft, error) {
	if len(in.Products)+len(in.Services) == 0 {
		return nil, domain.ErrEmptyCart
	}
	method := entity.PaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	if !method.Valid() {
		return nil, fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		TaxRate:       uc.cfg.TaxRate,
		PaymentMethod: method,
		ClientID:      in.ClientID,
		PetID:         in.PetID,
		AppointmentID: in.AppointmentID,
		InvoiceNumber: in.InvoiceNumber,
		ActorID:       in.ActorID,
		CreatedAt:     now,
	}
	draft := &saleDraft{
		sale:        sale,
		productQty:  make(map[string]int),
		productLine: make(map[string]int),
	}
	priced := make([]pricing.Line, 0, len(in.Products)+len(in.Services))
	products := make(map[string]*entity.Product)

	for i, item := range in.Products {
		if item.ID == "" || item.Quantity <= 0 {
			return nil, domain.NewLineError(domain.ErrInvalidInput, i, item.ID, "")
		}
		p, ok := products[item.ID]
		if !ok {
			var err error
			p, err = uc.products.GetByID(ctx, item.ID)
			if err != nil {
				return nil, fmt.Errorf("venta: obtener producto: %w", err)
			}
			if p == nil {
				return nil, domain.NewLineError(domain.ErrProductNotFound, i, item.ID, "")
			}
			products[item.ID] = p
			draft.productLine[item.ID] = i
		}
		draft.productQty[item.ID] += item.Quantity
		if p.Quantity < draft.productQty[item.ID] {
			return nil, domain.NewLineError(domain.ErrInsufficientStock, i, p.ID, p.Name)
		}
		price, err := resolvePrice(item.UnitPrice, p.SalePrice, i, p.ID, p.Name)
		if err != nil {
			return nil, err
		}
		line := newLine(entity.LineKindProduct, p.ID, p.Name, item.Quantity, price, i)
		sale.ProductLines = append(sale.ProductLines, line)
		priced = append(priced, pricing.Line{Quantity: item.Quantity, UnitPrice: price})
	}

	offset := len(in.Products)
	for j, item := range in.Services {
		pos := offset + j
		if item.ID == "" || item.Quantity <= 0 {
			return nil, domain.NewLineError(domain.ErrInvalidInput, pos, item.ID, "")
		}
		svc, err := uc.services.GetByID(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("venta: obtener servicio: %w", err)
		}
		if svc == nil {
			return nil, domain.NewLineError(domain.ErrServiceNotFound, pos, item.ID, "")
		}
		if !svc.Active {
			return nil, domain.NewLineError(domain.ErrServiceInactive, pos, svc.ID, svc.Name)
		}
		price, err := resolvePrice(item.UnitPrice, svc.BasePrice, pos, svc.ID, svc.Name)
		if err != nil {
			return nil, err
		}
		line := newLine(entity.LineKindService, svc.ID, svc.Name, item.Quantity, price, pos)
		sale.ServiceLines = append(sale.ServiceLines, line)
		draft.services = append(draft.services, svc)
		draft.serviceLines = append(draft.serviceLines, line)
		priced = append(priced, pricing.Line{Quantity: item.Quantity, UnitPrice: price})
	}

	if in.AppointmentID != "" {
		appt, err := uc.appointments.GetByID(ctx, in.AppointmentID)
		if err != nil {
			return nil, fmt.Errorf("venta: obtener cita: %w", err)
		}
		if appt == nil {
			return nil, domain.ErrAppointmentNotFound
		}
	}

	totals := pricing.Compute(priced, uc.cfg.TaxRate)
	sale.Subtotal = totals.Subtotal
	sale.Tax = totals.Tax
	sale.Total = totals.Total
	return draft, nil
}

// commit fase de escritura. Puede ejecutarse más de una vez si el almacenamiento reintenta,
// por eso no modifica el borrador salvo campos que se recalculan igual.
func (uc *CreateSaleUseCase) commit(ctx context.Context, tx repository.TxRepos, d *saleDraft) error {
	sale := d.sale

	// a. salidas de inventario, una por producto, en orden de ID
	ids := make([]string, 0, len(d.productQty))
	for id := range d.productQty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, _, err := uc.ledger.RecordInTx(ctx, tx, inventory.MovementInput{
			ProductID: id,
			Type:      entity.MovementTypeOutflow,
			Quantity:  d.productQty[id],
			Reason:    DirectSaleReason,
			ActorID:   sale.ActorID,
			Reference: sale.ID,
		})
		if err != nil {
			return atLine(err, d.productLine[id])
		}
	}

	if uc.cfg.ConsumeServiceSupplies {
		for i, svc := range d.services {
			line := d.serviceLines[i]
			if _, err := uc.supplies.ConsumeInTx(ctx, tx, svc, line.Quantity, sale.ActorID, sale.ID); err != nil {
				return atLine(err, line.Position)
			}
		}
	}

	// b. cita
	if sale.AppointmentID != "" {
		if err := tx.Appointments.UpdateStatus(ctx, sale.AppointmentID, entity.AppointmentCompleted, sale.CreatedAt); err != nil {
			return err
		}
	}

	// c. venta
	if err := tx.Sales.Create(ctx, sale); err != nil {
		return err
	}

	// d. caja; una venta sin cobro no genera movimiento
	if !sale.Total.IsPositive() {
		return nil
	}
	return uc.cash.PostInTx(ctx, tx, &entity.CashFlowEntry{
		Date:          sale.CreatedAt,
		Direction:     entity.CashInflow,
		Category:      entity.CashCategorySale,
		Description:   fmt.Sprintf("%d productos + %d servicios", len(sale.ProductLines), len(sale.ServiceLines)),
		Amount:        sale.Total,
		ReferenceKind: entity.ReferenceKindSale,
		ReferenceID:   sale.ID,
		ActorID:       sale.ActorID,
	})
}

// GetSale devuelve una venta con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromSale(sale), nil
}

func resolvePrice(override *decimal.Decimal, catalog decimal.Decimal, line int, id, name string) (decimal.Decimal, error) {
	if override == nil {
		return catalog, nil
	}
	if override.IsNegative() || !pricing.IsCents(*override) {
		return decimal.Zero, domain.NewLineError(domain.ErrInvalidInput, line, id, name)
	}
	return *override, nil
}

func newLine(kind entity.LineKind, id, name string, qty int, price decimal.Decimal, pos int) *entity.SaleLine {
	return &entity.SaleLine{
		Kind:      kind,
		ItemID:    id,
		Name:      name,
		Quantity:  qty,
		UnitPrice: price,
		Subtotal:  pricing.Line{Quantity: qty, UnitPrice: price}.Subtotal(),
		Position:  pos,
	}
}

// atLine ubica en el carrito un error de línea que el libro de inventario reportó sin posición.
func atLine(err error, line int) error {
	le, ok := domain.AsLineError(err)
	if !ok || le.Line >= 0 {
		return err
	}
	return domain.NewLineError(le.Kind, line, le.EntityID, le.Name)
}
