package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/inventory"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// RegisterMovementUseCase es el libro de inventario: única puerta por la que cambia el stock.
// Bloquea la fila del producto (SELECT FOR UPDATE), valida, actualiza el stock cacheado e
// inserta el movimiento en la misma transacción.
type RegisterMovementUseCase struct {
	uow       repository.UnitOfWork
	products  repository.ProductRepository
	movements repository.InventoryMovementRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	uow repository.UnitOfWork,
	products repository.ProductRepository,
	movements repository.InventoryMovementRepository,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		uow:       uow,
		products:  products,
		movements: movements,
		log:       log,
		now:       time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para ENTRADA/SALIDA, Quantity es la magnitud (> 0). Para AJUSTE es el stock objetivo (>= 0)
// y Reason es obligatorio. UnitCost solo aplica a ENTRADA.
type MovementInput struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int
	Reason    string
	ActorID   string
	UnitCost  *decimal.Decimal
	Reference string
}

func (in MovementInput) validate() error {
	if in.ProductID == "" || !in.Type.Valid() {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeAdjustment:
		if in.Quantity < 0 || strings.TrimSpace(in.Reason) == "" {
			return domain.ErrInvalidInput
		}
	default:
		if in.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	if in.UnitCost != nil && (in.Type != entity.MovementTypeInflow || in.UnitCost.IsNegative()) {
		return domain.ErrInvalidInput
	}
	return nil
}

// RegisterMovement registra un movimiento en su propia transacción (correcciones manuales,
// recepciones de mercadería). Devuelve el producto actualizado y el movimiento creado.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.Product, *entity.InventoryMovement, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	var (
		product  *entity.Product
		movement *entity.InventoryMovement
	)
	err := uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		product, movement, err = uc.RecordInTx(ctx, tx, in)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("type", string(in.Type)).
			Int("quantity", in.Quantity).
			Msg("movimiento de inventario rechazado")
		return nil, nil, domain.ClassifyTxError(err)
	}
	uc.log.Info().
		Str("product_id", product.ID).
		Str("type", string(movement.Type)).
		Int("previous", movement.PreviousQuantity).
		Int("new", movement.NewQuantity).
		Str("actor_id", in.ActorID).
		Msg("movimiento de inventario registrado")
	return product, movement, nil
}

// RecordInTx aplica el movimiento usando los repositorios de la transacción del caller.
// Si retorna error, el caller debe abortar su transacción (rollback).
func (uc *RegisterMovementUseCase) RecordInTx(ctx context.Context, tx repository.TxRepos, in MovementInput) (*entity.Product, *entity.InventoryMovement, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	// Bloquea la fila del producto para que el chequeo y la escritura no se separen
	product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.NewLineError(domain.ErrProductNotFound, -1, in.ProductID, "")
	}

	prev := product.Quantity
	cost := product.UnitCost
	var next, magnitude int
	switch in.Type {
	case entity.MovementTypeInflow:
		next, magnitude = prev+in.Quantity, in.Quantity
		if in.UnitCost != nil {
			cost = inventory.CostCalculator(prev, product.UnitCost, in.Quantity, *in.UnitCost)
		}
	case entity.MovementTypeOutflow:
		if prev < in.Quantity {
			return nil, nil, domain.NewLineError(domain.ErrInsufficientStock, -1, product.ID, product.Name)
		}
		next, magnitude = prev-in.Quantity, in.Quantity
	case entity.MovementTypeAdjustment:
		delta := in.Quantity - prev
		if delta == 0 {
			return nil, nil, domain.NewLineError(domain.ErrNoOpAdjustment, -1, product.ID, product.Name)
		}
		if delta < 0 {
			delta = -delta
		}
		next, magnitude = in.Quantity, delta
	}

	now := uc.now()
	if err := tx.Products.UpdateStock(ctx, product.ID, next, cost); err != nil {
		return nil, nil, err
	}
	mov := &entity.InventoryMovement{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		Type:             in.Type,
		Quantity:         magnitude,
		PreviousQuantity: prev,
		NewQuantity:      next,
		UnitCost:         in.UnitCost,
		Reason:           in.Reason,
		Reference:        in.Reference,
		ActorID:          in.ActorID,
		CreatedAt:        now,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	product.Quantity = next
	product.UnitCost = cost
	product.UpdatedAt = now
	return product, mov, nil
}

// ListMovements historial del producto en orden cronológico.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.movements.ListByProduct(ctx, productID)
}

// LedgerAudit resultado de reconstruir el stock a partir de los movimientos.
type LedgerAudit struct {
	ProductID       string
	InitialQuantity int
	MovementCount   int
	Replayed        int
	Current         int
}

// Consistent indica si el stock cacheado coincide con el reconstruido.
func (a LedgerAudit) Consistent() bool { return a.Replayed == a.Current }

// VerifyLedger reproduce los movimientos del producto desde su stock inicial y lo compara
// con el stock cacheado. Se lee dentro de una transacción para no mezclar estados.
func (uc *RegisterMovementUseCase) VerifyLedger(ctx context.Context, productID string) (*LedgerAudit, error) {
	var audit *LedgerAudit
	err := uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movs, err := tx.Movements.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		audit = &LedgerAudit{
			ProductID:       productID,
			InitialQuantity: product.InitialQuantity,
			MovementCount:   len(movs),
			Replayed:        entity.ReplayQuantity(product.InitialQuantity, movs),
			Current:         product.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, domain.ClassifyTxError(err)
	}
	if !audit.Consistent() {
		uc.log.Error().
			Str("product_id", productID).
			Int("replayed", audit.Replayed).
			Int("current", audit.Current).
			Msg("el stock no coincide con el libro de inventario")
	}
	return audit, nil
}
