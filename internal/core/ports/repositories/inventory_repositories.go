package repositories

import (
	"context"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// InventoryRepositoryFacade defines persistence for the FIFO inventory
// subsystem. Purchase and usage both mutate the item's quantity and value in
// the same store transaction as the movement insert.
type InventoryRepositoryFacade interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, lowStockOnly bool) ([]domain.InventoryItem, error)

	// SavePurchase inserts a purchase movement and increases the item's
	// quantity and total value atomically.
	SavePurchase(ctx context.Context, movement domain.InventoryMovement) error

	// FindOpenPurchaseLayers returns purchase movements with remaining
	// quantity, oldest first. These are the FIFO layers usage consumes.
	FindOpenPurchaseLayers(ctx context.Context, itemID string) ([]domain.InventoryMovement, error)

	// SaveUsage inserts a usage movement, writes back the consumed layers'
	// remaining quantities and decreases the item's quantity and total
	// value, all atomically.
	SaveUsage(ctx context.Context, movement domain.InventoryMovement, consumedLayers []domain.InventoryMovement) error
}
