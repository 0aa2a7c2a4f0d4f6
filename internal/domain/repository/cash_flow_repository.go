package repository

import (
	"context"
	"time"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// CashFlowRepository puerto del libro de caja.
type CashFlowRepository interface {
	Create(ctx context.Context, entry *entity.CashFlowEntry) error
	GetByID(ctx context.Context, id string) (*entity.CashFlowEntry, error)
	ListByReference(ctx context.Context, kind, id string) ([]*entity.CashFlowEntry, error)
	// List filtra por fecha (from/to opcionales), más recientes primero.
	List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.CashFlowEntry, error)
	Delete(ctx context.Context, id string) error
}
