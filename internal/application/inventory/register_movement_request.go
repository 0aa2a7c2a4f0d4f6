package inventory

import (
	"context"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	product, mov, err := uc.RegisterMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Type:      entity.MovementType(in.Type),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   actorID,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Product:  dto.FromProduct(product),
		Movement: dto.FromMovement(mov),
	}, nil
}

// ListMovementsResponse historial listo para serializar.
func (uc *RegisterMovementUseCase) ListMovementsResponse(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	list, err := uc.ListMovements(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(list), nil
}

// VerifyLedgerResponse auditoría lista para serializar.
func (uc *RegisterMovementUseCase) VerifyLedgerResponse(ctx context.Context, productID string) (*dto.LedgerAuditResponse, error) {
	a, err := uc.VerifyLedger(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerAuditResponse{
		ProductID:       a.ProductID,
		InitialQuantity: a.InitialQuantity,
		MovementCount:   a.MovementCount,
		ReplayedQty:     a.Replayed,
		CurrentQuantity: a.Current,
		Consistent:      a.Consistent(),
	}, nil
}
