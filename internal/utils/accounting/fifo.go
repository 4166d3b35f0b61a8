package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// FIFOConsumption is the outcome of consuming purchase layers oldest-first.
type FIFOConsumption struct {
	Cost          decimal.Decimal            // Total cost of the consumed quantity
	UpdatedLayers []domain.InventoryMovement // Layers whose remaining quantity changed
}

// ConsumeFIFO walks purchase layers in the order given (callers pass them
// sorted by movement date ascending) and consumes quantity from each until
// the requested amount is covered. The returned cost is the FIFO cost of
// goods sold for that quantity.
func ConsumeFIFO(layers []domain.InventoryMovement, quantity decimal.Decimal) (FIFOConsumption, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return FIFOConsumption{}, fmt.Errorf("%w: usage quantity must be positive", apperrors.ErrValidation)
	}

	remaining := quantity
	cost := decimal.Zero
	updated := make([]domain.InventoryMovement, 0, len(layers))

	for _, layer := range layers {
		if remaining.IsZero() {
			break
		}
		if layer.RemainingQuantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		take := decimal.Min(layer.RemainingQuantity, remaining)
		cost = cost.Add(take.Mul(layer.UnitCost))
		layer.RemainingQuantity = layer.RemainingQuantity.Sub(take)
		remaining = remaining.Sub(take)
		updated = append(updated, layer)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return FIFOConsumption{}, fmt.Errorf("%w: insufficient inventory, short by %s",
			apperrors.ErrValidation, remaining.String())
	}

	return FIFOConsumption{Cost: cost, UpdatedLayers: updated}, nil
}
