package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id, name, description, base_price, operating_cost, duration_minutes, active, created_at, updated_at`

// ServiceRepo servicios clínicos y sus insumos (tabla service_supplies).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste el servicio y sus insumos. Fuera de una transacción, un fallo en los insumos
// puede dejar la cabecera; el caso de uso valida los productos antes de llamar.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	_, err := r.q.Exec(ctx, `INSERT INTO services (`+serviceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Description, s.BasePrice, s.OperatingCost, s.DurationMinutes, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	for i, sp := range s.Supplies {
		_, err := r.q.Exec(ctx,
			`INSERT INTO service_supplies (service_id, position, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			s.ID, i, sp.ProductID, sp.Quantity,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewLineError(domain.ErrProductNotFound, i, sp.ProductID, "")
			}
			return fmt.Errorf("insert service supply: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un servicio con sus insumos.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.OperatingCost, &s.DurationMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	supplies, err := r.supplies(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Supplies = supplies[s.ID]
	return &s, nil
}

// List lista servicios por nombre con paginación.
func (r *ServiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	var list []*entity.Service
	ids := make([]string, 0)
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice, &s.OperatingCost,
			&s.DurationMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	supplies, err := r.supplies(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Supplies = supplies[s.ID]
	}
	return list, nil
}

func (r *ServiceRepo) supplies(ctx context.Context, serviceIDs []string) (map[string][]entity.ServiceSupply, error) {
	rows, err := r.q.Query(ctx,
		`SELECT service_id, product_id, quantity FROM service_supplies WHERE service_id = ANY($1) ORDER BY service_id, position`,
		serviceIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list service supplies: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ServiceSupply, len(serviceIDs))
	for rows.Next() {
		var serviceID string
		var sp entity.ServiceSupply
		if err := rows.Scan(&serviceID, &sp.ProductID, &sp.Quantity); err != nil {
			return nil, fmt.Errorf("scan service supply: %w", err)
		}
		out[serviceID] = append(out[serviceID], sp)
	}
	return out, rows.Err()
}
