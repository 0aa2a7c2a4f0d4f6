package repository

import (
	"context"
	"time"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// AppointmentRepository puerto mínimo sobre la agenda (colaborador externo).
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
