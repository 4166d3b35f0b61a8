package mapping

import (
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:        d.ItemID,
		ItemCode:      d.ItemCode,
		ItemName:      d.ItemName,
		UnitOfMeasure: d.UnitOfMeasure,
		Quantity:      d.Quantity,
		TotalValue:    d.TotalValue,
		MinimumStock:  d.MinimumStock,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:        m.ItemID,
		ItemCode:      m.ItemCode,
		ItemName:      m.ItemName,
		UnitOfMeasure: m.UnitOfMeasure,
		Quantity:      m.Quantity,
		TotalValue:    m.TotalValue,
		MinimumStock:  m.MinimumStock,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInventoryMovement converts a domain InventoryMovement to a model InventoryMovement
func ToModelInventoryMovement(d domain.InventoryMovement) models.InventoryMovement {
	return models.InventoryMovement{
		MovementID:        d.MovementID,
		ItemID:            d.ItemID,
		MovementType:      string(d.MovementType),
		MovementDate:      d.MovementDate,
		Quantity:          d.Quantity,
		UnitCost:          d.UnitCost,
		TotalCost:         d.TotalCost,
		RemainingQuantity: d.RemainingQuantity,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryMovement converts a model InventoryMovement to a domain InventoryMovement
func ToDomainInventoryMovement(m models.InventoryMovement) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID:        m.MovementID,
		ItemID:            m.ItemID,
		MovementType:      domain.MovementType(m.MovementType),
		MovementDate:      m.MovementDate,
		Quantity:          m.Quantity,
		UnitCost:          m.UnitCost,
		TotalCost:         m.TotalCost,
		RemainingQuantity: m.RemainingQuantity,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInventoryItemSlice converts a slice of model InventoryItems to domain InventoryItems
func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	ds := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryItem(m)
	}
	return ds
}

// ToDomainInventoryMovementSlice converts a slice of model InventoryMovements to domain InventoryMovements
func ToDomainInventoryMovementSlice(ms []models.InventoryMovement) []domain.InventoryMovement {
	ds := make([]domain.InventoryMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryMovement(m)
	}
	return ds
}
