package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies an inventory stock movement.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementUsage      MovementType = "usage"
	MovementAdjustment MovementType = "adjustment"
)

// InventoryItem is a stocked good tracked by the FIFO costing subsystem.
// This subsystem is independent of the ledger core: it only hands the
// journal engine a precomputed COGS amount.
type InventoryItem struct {
	ItemID        string          `json:"itemID"` // Primary key (UUID)
	ItemCode      string          `json:"itemCode"`
	ItemName      string          `json:"itemName"`
	UnitOfMeasure string          `json:"unitOfMeasure"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the item has fallen to or below its minimum.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinimumStock)
}

// InventoryMovement records one purchase, usage or adjustment. Purchase
// movements retain a RemainingQuantity so usage can consume them
// oldest-first (FIFO layers).
type InventoryMovement struct {
	MovementID        string          `json:"movementID"` // Primary key (UUID)
	ItemID            string          `json:"itemID"`     // FK -> InventoryItem.itemID
	MovementType      MovementType    `json:"movementType"`
	MovementDate      time.Time       `json:"movementDate"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unitCost"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	Notes             string          `json:"notes"`
	AuditFields
}
