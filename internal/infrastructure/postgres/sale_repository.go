package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (cabecera + sale_lines). Solo inserción y lectura.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y todas las líneas. Llamar dentro de una transacción.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, subtotal, tax_rate, tax, total, payment_method, client_id, pet_id, appointment_id, invoice_number, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.Subtotal, s.TaxRate, s.Tax, s.Total, string(s.PaymentMethod),
		s.ClientID, s.PetID, s.AppointmentID, s.InvoiceNumber, s.ActorID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	batch := &pgx.Batch{}
	for _, l := range s.Lines() {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.SaleID = s.ID
		batch.Queue(`
			INSERT INTO sale_lines (id, sale_id, position, kind, item_id, name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, l.SaleID, l.Position, string(l.Kind), l.ItemID, l.Name, l.Quantity, l.UnitPrice, l.Subtotal,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert sale lines: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas separadas por tipo.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var method string
	err := r.q.QueryRow(ctx, `
		SELECT id, subtotal, tax_rate, tax, total, payment_method, client_id, pet_id, appointment_id, invoice_number, actor_id, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.Subtotal, &s.TaxRate, &s.Tax, &s.Total, &method,
		&s.ClientID, &s.PetID, &s.AppointmentID, &s.InvoiceNumber, &s.ActorID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.PaymentMethod = entity.PaymentMethod(method)

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, position, kind, item_id, name, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		var kind string
		if err := rows.Scan(&l.ID, &l.SaleID, &l.Position, &kind, &l.ItemID, &l.Name,
			&l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		l.Kind = entity.LineKind(kind)
		if l.Kind == entity.LineKindService {
			s.ServiceLines = append(s.ServiceLines, &l)
		} else {
			s.ProductLines = append(s.ProductLines, &l)
		}
	}
	return &s, rows.Err()
}
