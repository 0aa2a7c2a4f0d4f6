package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_quantity, new_quantity, unit_cost, reason, reference, actor_id, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es de solo inserción; el orden cronológico lo da la columna seq.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.PreviousQuantity, m.NewQuantity,
		m.UnitCost, m.Reason, m.Reference, m.ActorID, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewLineError(domain.ErrProductNotFound, -1, m.ProductID, "")
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

func (r *InventoryMovementRepo) list(ctx context.Context, where string, arg any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE `+where+` ORDER BY seq`, arg)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
			&m.UnitCost, &m.Reason, &m.Reference, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct movimientos del producto en orden de inserción.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `product_id = $1`, productID)
}

// ListByReference movimientos generados por un documento (venta o servicio).
func (r *InventoryMovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `reference = $1`, reference)
}
