// Package cashflow contiene el libro de caja: ingresos y egresos, los generados por ventas y los manuales.
package cashflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// LedgerUseCase libro de caja.
type LedgerUseCase struct {
	uow     repository.UnitOfWork
	entries repository.CashFlowRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(uow repository.UnitOfWork, entries repository.CashFlowRepository, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{uow: uow, entries: entries, log: log, now: time.Now}
}

// PostInTx valida y asienta el movimiento usando la transacción del caller.
// Completa ID, fecha y CreatedAt si vienen vacíos.
func (uc *LedgerUseCase) PostInTx(ctx context.Context, tx repository.TxRepos, e *entity.CashFlowEntry) error {
	if !e.Direction.Valid() || strings.TrimSpace(e.Category) == "" || !e.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	if (e.ReferenceKind == "") != (e.ReferenceID == "") {
		return domain.ErrInvalidInput
	}
	now := uc.now()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedAt = now
	return tx.CashFlow.Create(ctx, e)
}

// RegisterEntry asienta un movimiento manual. Desde esta interfaz no se puede referenciar un documento.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, actorID string, in dto.CreateCashFlowEntryRequest) (*dto.CashFlowEntryResponse, error) {
	entry := &entity.CashFlowEntry{
		Direction:   entity.CashDirection(strings.ToUpper(strings.TrimSpace(in.Direction))),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		ActorID:     actorID,
	}
	if in.Date != nil {
		entry.Date = *in.Date
	}
	err := uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		return uc.PostInTx(ctx, tx, entry)
	})
	if err != nil {
		return nil, domain.ClassifyTxError(err)
	}
	uc.log.Info().
		Str("entry_id", entry.ID).
		Str("direction", string(entry.Direction)).
		Str("category", entry.Category).
		Str("amount", entry.Amount.StringFixed(2)).
		Msg("movimiento de caja registrado")
	out := dto.FromCashFlowEntry(entry)
	return &out, nil
}

// List movimientos entre from y to (ambos opcionales), más recientes primero.
func (uc *LedgerUseCase) List(ctx context.Context, from, to *time.Time, page dto.PageRequest) (*dto.CashFlowListResponse, error) {
	page.DefaultPage()
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.entries.List(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashFlowEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.FromCashFlowEntry(e))
	}
	return &dto.CashFlowListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListByReference movimientos generados por un documento (p. ej. una venta).
func (uc *LedgerUseCase) ListByReference(ctx context.Context, kind, id string) ([]*entity.CashFlowEntry, error) {
	return uc.entries.ListByReference(ctx, kind, id)
}

// Delete elimina un movimiento manual. Los generados por un documento se anulan desde su origen.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	err := uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		entry, err := tx.CashFlow.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.SystemGenerated() {
			return domain.ErrSystemGeneratedEntry
		}
		return tx.CashFlow.Delete(ctx, id)
	})
	if err != nil {
		return domain.ClassifyTxError(err)
	}
	uc.log.Info().Str("entry_id", id).Msg("movimiento de caja eliminado")
	return nil
}
