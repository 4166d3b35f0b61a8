package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

func layer(id string, unitCost, remaining int64) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID:        id,
		UnitCost:          decimal.NewFromInt(unitCost),
		RemainingQuantity: decimal.NewFromInt(remaining),
	}
}

func TestConsumeFIFO_SingleLayer(t *testing.T) {
	layers := []domain.InventoryMovement{layer("l1", 100000, 10)}

	got, err := ConsumeFIFO(layers, decimal.NewFromInt(4))
	assert.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(400000)))
	assert.Len(t, got.UpdatedLayers, 1)
	assert.True(t, got.UpdatedLayers[0].RemainingQuantity.Equal(decimal.NewFromInt(6)))
}

func TestConsumeFIFO_SpansLayersOldestFirst(t *testing.T) {
	layers := []domain.InventoryMovement{
		layer("l1", 100000, 3),
		layer("l2", 120000, 5),
	}

	got, err := ConsumeFIFO(layers, decimal.NewFromInt(4))
	assert.NoError(t, err)
	// 3 at the old cost, 1 at the new cost.
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(420000)), "got %s", got.Cost)
	assert.Len(t, got.UpdatedLayers, 2)
	assert.True(t, got.UpdatedLayers[0].RemainingQuantity.IsZero())
	assert.True(t, got.UpdatedLayers[1].RemainingQuantity.Equal(decimal.NewFromInt(4)))
}

func TestConsumeFIFO_SkipsExhaustedLayers(t *testing.T) {
	layers := []domain.InventoryMovement{
		layer("l1", 100000, 0),
		layer("l2", 120000, 5),
	}

	got, err := ConsumeFIFO(layers, decimal.NewFromInt(2))
	assert.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(240000)))
	assert.Len(t, got.UpdatedLayers, 1)
	assert.Equal(t, "l2", got.UpdatedLayers[0].MovementID)
}

func TestConsumeFIFO_ExactDepletion(t *testing.T) {
	layers := []domain.InventoryMovement{
		layer("l1", 100000, 3),
		layer("l2", 120000, 2),
	}

	got, err := ConsumeFIFO(layers, decimal.NewFromInt(5))
	assert.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(540000)))
	for _, l := range got.UpdatedLayers {
		assert.True(t, l.RemainingQuantity.IsZero())
	}
}

func TestConsumeFIFO_FractionalQuantities(t *testing.T) {
	layers := []domain.InventoryMovement{
		layer("l1", 100000, 1),
	}

	got, err := ConsumeFIFO(layers, decimal.RequireFromString("0.5"))
	assert.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(50000)))
	assert.True(t, got.UpdatedLayers[0].RemainingQuantity.Equal(decimal.RequireFromString("0.5")))
}

func TestConsumeFIFO_InsufficientStock(t *testing.T) {
	layers := []domain.InventoryMovement{layer("l1", 100000, 2)}

	_, err := ConsumeFIFO(layers, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "short by 3")
}

func TestConsumeFIFO_NonPositiveQuantity(t *testing.T) {
	layers := []domain.InventoryMovement{layer("l1", 100000, 2)}

	_, err := ConsumeFIFO(layers, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = ConsumeFIFO(layers, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
