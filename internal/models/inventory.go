package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked good tracked by the FIFO costing subsystem.
type InventoryItem struct {
	ItemID        string          `db:"item_id"`
	ItemCode      string          `db:"item_code"`
	ItemName      string          `db:"item_name"`
	UnitOfMeasure string          `db:"unit_of_measure"`
	Quantity      decimal.Decimal `db:"quantity"`
	TotalValue    decimal.Decimal `db:"total_value"`
	MinimumStock  decimal.Decimal `db:"minimum_stock"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

// InventoryMovement records one purchase, usage or adjustment. Purchase rows
// keep a remaining_quantity so usage can consume them oldest-first.
type InventoryMovement struct {
	MovementID        string          `db:"movement_id"`
	ItemID            string          `db:"item_id"`
	MovementType      string          `db:"movement_type"`
	MovementDate      time.Time       `db:"movement_date"`
	Quantity          decimal.Decimal `db:"quantity"`
	UnitCost          decimal.Decimal `db:"unit_cost"`
	TotalCost         decimal.Decimal `db:"total_cost"`
	RemainingQuantity decimal.Decimal `db:"remaining_quantity"`
	Notes             string          `db:"notes"`
	AuditFields
}
