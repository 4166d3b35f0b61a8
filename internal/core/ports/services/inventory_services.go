package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// InventorySvcFacade tracks stock items and costs usage on a FIFO basis.
// Purchases create cost layers; usage consumes the oldest layers first and
// reports the resulting cost so a sales event can recognise COGS.
type InventorySvcFacade interface {
	// CreateItem registers a stock-tracked item.
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error)

	// GetItemByID retrieves a specific item.
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// ListItems retrieves all items, optionally only those at or below
	// their minimum stock level.
	ListItems(ctx context.Context, lowStockOnly bool) ([]domain.InventoryItem, error)

	// RecordPurchase adds a FIFO cost layer and books the purchase entry.
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest, creatorUserID string) (*domain.InventoryItem, error)

	// RecordUsage consumes stock oldest-first, books the usage entry and
	// returns the FIFO cost charged.
	RecordUsage(ctx context.Context, req dto.RecordUsageRequest, creatorUserID string) (*domain.InventoryItem, decimal.Decimal, error)
}
