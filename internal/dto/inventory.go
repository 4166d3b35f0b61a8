package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// CreateInventoryItemRequest registers a stock-tracked item.
type CreateInventoryItemRequest struct {
	ItemCode      string          `json:"itemCode" binding:"required"`
	ItemName      string          `json:"itemName" binding:"required"`
	UnitOfMeasure string          `json:"unitOfMeasure" binding:"required"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
}

// RecordPurchaseRequest records a stock purchase as a new FIFO cost layer.
type RecordPurchaseRequest struct {
	ItemID   string          `json:"itemID" binding:"required,uuid"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	UnitCost decimal.Decimal `json:"unitCost" binding:"required,gt=0"`
	OnCredit bool            `json:"onCredit"`
	Notes    string          `json:"notes"`
}

// RecordUsageRequest consumes stock from the oldest open layers.
type RecordUsageRequest struct {
	ItemID      string          `json:"itemID" binding:"required,uuid"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	Description string          `json:"description"`
}

// InventoryItemResponse is an inventory item in API responses.
type InventoryItemResponse struct {
	ItemID        string          `json:"itemID"`
	ItemCode      string          `json:"itemCode"`
	ItemName      string          `json:"itemName"`
	UnitOfMeasure string          `json:"unitOfMeasure"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IsLowStock    bool            `json:"isLowStock"`
	IsActive      bool            `json:"isActive"`
}

// ToInventoryItemResponse converts a domain item to its API shape.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        item.ItemID,
		ItemCode:      item.ItemCode,
		ItemName:      item.ItemName,
		UnitOfMeasure: item.UnitOfMeasure,
		Quantity:      item.Quantity,
		TotalValue:    item.TotalValue,
		MinimumStock:  item.MinimumStock,
		IsLowStock:    item.IsLowStock(),
		IsActive:      item.IsActive,
	}
}

// UsageResponse reports the FIFO cost charged for a usage.
type UsageResponse struct {
	Item InventoryItemResponse `json:"item"`
	Cost decimal.Decimal       `json:"cost"`
}
