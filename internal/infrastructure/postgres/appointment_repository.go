package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo acceso mínimo a la agenda compartida.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var a entity.Appointment
	err := r.q.QueryRow(ctx, `SELECT id, client_id, pet_id, status, updated_at FROM appointments WHERE id = $1`, id).
		Scan(&a.ID, &a.ClientID, &a.PetID, &a.Status, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// UpdateStatus cambia el estado de la cita.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}
