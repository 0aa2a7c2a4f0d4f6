package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

func TestInventoryMovement_Delta(t *testing.T) {
	cases := []struct {
		name string
		mov  entity.InventoryMovement
		want int
	}{
		{"entrada suma", entity.InventoryMovement{Type: entity.MovementTypeInflow, Quantity: 4}, 4},
		{"salida resta", entity.InventoryMovement{Type: entity.MovementTypeOutflow, Quantity: 3}, -3},
		{"ajuste hacia arriba", entity.InventoryMovement{Type: entity.MovementTypeAdjustment, Quantity: 2, PreviousQuantity: 5, NewQuantity: 7}, 2},
		{"ajuste hacia abajo", entity.InventoryMovement{Type: entity.MovementTypeAdjustment, Quantity: 5, PreviousQuantity: 5, NewQuantity: 0}, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.mov.Delta())
		})
	}
}

func TestReplayQuantity(t *testing.T) {
	movs := []*entity.InventoryMovement{
		{Type: entity.MovementTypeInflow, Quantity: 10},
		{Type: entity.MovementTypeOutflow, Quantity: 4},
		{Type: entity.MovementTypeAdjustment, Quantity: 1, PreviousQuantity: 16, NewQuantity: 15},
	}
	assert.Equal(t, 15, entity.ReplayQuantity(10, movs))
	assert.Equal(t, 7, entity.ReplayQuantity(7, nil))
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, entity.PaymentCard.Valid())
	assert.False(t, entity.PaymentMethod("cheque").Valid())
}
