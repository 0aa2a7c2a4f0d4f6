package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)

const cashFlowColumns = `id, date, direction, category, description, amount, reference_kind, reference_id, actor_id, created_at`

// CashFlowRepo libro de caja sobre PostgreSQL.
type CashFlowRepo struct {
	q Querier
}

// NewCashFlowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashFlowRepository(q Querier) *CashFlowRepo {
	return &CashFlowRepo{q: q}
}

func scanCashFlow(row pgx.Row) (*entity.CashFlowEntry, error) {
	var e entity.CashFlowEntry
	var direction string
	if err := row.Scan(&e.ID, &e.Date, &direction, &e.Category, &e.Description, &e.Amount,
		&e.ReferenceKind, &e.ReferenceID, &e.ActorID, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Direction = entity.CashDirection(direction)
	return &e, nil
}

// Create persiste un movimiento de caja.
func (r *CashFlowRepo) Create(ctx context.Context, e *entity.CashFlowEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO cash_flow_entries (`+cashFlowColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.Date, string(e.Direction), e.Category, e.Description, e.Amount,
		e.ReferenceKind, e.ReferenceID, e.ActorID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash flow entry: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *CashFlowRepo) GetByID(ctx context.Context, id string) (*entity.CashFlowEntry, error) {
	e, err := scanCashFlow(r.q.QueryRow(ctx, `SELECT `+cashFlowColumns+` FROM cash_flow_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash flow entry: %w", err)
	}
	return e, nil
}

func (r *CashFlowRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CashFlowEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash flow: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashFlowEntry
	for rows.Next() {
		e, err := scanCashFlow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash flow entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListByReference movimientos generados por un documento.
func (r *CashFlowRepo) ListByReference(ctx context.Context, kind, id string) ([]*entity.CashFlowEntry, error) {
	return r.list(ctx, `SELECT `+cashFlowColumns+` FROM cash_flow_entries
		WHERE reference_kind = $1 AND reference_id = $2 ORDER BY created_at`, kind, id)
}

// List movimientos en un rango de fechas (opcional), más recientes primero.
func (r *CashFlowRepo) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.CashFlowEntry, error) {
	query := `SELECT ` + cashFlowColumns + ` FROM cash_flow_entries WHERE TRUE`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY date DESC, created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}
	return r.list(ctx, query, args...)
}

// Delete elimina un movimiento. Nunca borra los generados por un documento.
func (r *CashFlowRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM cash_flow_entries WHERE id = $1 AND reference_id = ''`, id)
	if err != nil {
		return fmt.Errorf("delete cash flow entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
