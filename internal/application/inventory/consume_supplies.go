package inventory

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

// ServiceExecutionReason motivo de las salidas generadas al ejecutar un servicio.
func ServiceExecutionReason(serviceName string) string {
	return "service execution: " + serviceName
}

// SupplyConsumptionUseCase descuenta los insumos de un servicio cuando efectivamente se realiza.
type SupplyConsumptionUseCase struct {
	uow      repository.UnitOfWork
	services repository.ServiceRepository
	ledger   *RegisterMovementUseCase
	log      zerolog.Logger
}

// NewSupplyConsumptionUseCase construye el caso de uso.
func NewSupplyConsumptionUseCase(
	uow repository.UnitOfWork,
	services repository.ServiceRepository,
	ledger *RegisterMovementUseCase,
	log zerolog.Logger,
) *SupplyConsumptionUseCase {
	return &SupplyConsumptionUseCase{uow: uow, services: services, ledger: ledger, log: log}
}

// ConsumeSupplies registra las salidas de todos los insumos del servicio en una sola transacción.
// Si algún insumo falla no queda ningún descuento aplicado.
func (uc *SupplyConsumptionUseCase) ConsumeSupplies(ctx context.Context, serviceID, actorID string) ([]*entity.InventoryMovement, error) {
	if serviceID == "" {
		return nil, domain.ErrInvalidInput
	}
	service, err := uc.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.NewLineError(domain.ErrServiceNotFound, -1, serviceID, "")
	}

	var movements []*entity.InventoryMovement
	err = uc.uow.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		movements, err = uc.ConsumeInTx(ctx, tx, service, 1, actorID, service.ID)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("service_id", serviceID).Msg("consumo de insumos rechazado")
		return nil, domain.ClassifyTxError(err)
	}
	uc.log.Info().
		Str("service_id", serviceID).
		Int("movements", len(movements)).
		Str("actor_id", actorID).
		Msg("insumos del servicio descontados")
	return movements, nil
}

// ConsumeSuppliesResponse variante lista para serializar.
func (uc *SupplyConsumptionUseCase) ConsumeSuppliesResponse(ctx context.Context, serviceID, actorID string) (*dto.ConsumeSuppliesResponse, error) {
	movs, err := uc.ConsumeSupplies(ctx, serviceID, actorID)
	if err != nil {
		return nil, err
	}
	return &dto.ConsumeSuppliesResponse{ServiceID: serviceID, Movements: dto.FromMovements(movs)}, nil
}

// ConsumeInTx descuenta los insumos de times ejecuciones del servicio dentro de la transacción
// del caller. Insumos repetidos del mismo producto se agrupan en una sola salida y los
// productos se bloquean en orden ascendente de ID.
func (uc *SupplyConsumptionUseCase) ConsumeInTx(
	ctx context.Context,
	tx repository.TxRepos,
	service *entity.Service,
	times int,
	actorID, reference string,
) ([]*entity.InventoryMovement, error) {
	if times <= 0 {
		return nil, domain.ErrInvalidInput
	}
	totals := make(map[string]int, len(service.Supplies))
	for _, s := range service.Supplies {
		if s.ProductID == "" || s.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		totals[s.ProductID] += s.Quantity * times
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	movements := make([]*entity.InventoryMovement, 0, len(ids))
	for _, productID := range ids {
		_, mov, err := uc.ledger.RecordInTx(ctx, tx, MovementInput{
			ProductID: productID,
			Type:      entity.MovementTypeOutflow,
			Quantity:  totals[productID],
			Reason:    ServiceExecutionReason(service.Name),
			ActorID:   actorID,
			Reference: reference,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, mov)
	}
	return movements, nil
}
