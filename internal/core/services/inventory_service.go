package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/accounting"
)

// inventoryService tracks stock on FIFO cost layers. It is deliberately
// independent of the ledger core: each stock movement hands the transaction
// classifier a business event with a precomputed amount, and the journal
// engine takes it from there.
type inventoryService struct {
	BaseService
	inventoryRepo  portsrepo.InventoryRepositoryFacade
	transactionSvc portssvc.TransactionSvcFacade
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, transactionSvc portssvc.TransactionSvcFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo:  inventoryRepo,
		transactionSvc: transactionSvc,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateItem registers a stock-tracked item.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorUserID string) (*domain.InventoryItem, error) {
	if req.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("%w: minimum stock cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:        uuid.NewString(),
		ItemCode:      req.ItemCode,
		ItemName:      req.ItemName,
		UnitOfMeasure: req.UnitOfMeasure,
		Quantity:      decimal.Zero,
		TotalValue:    decimal.Zero,
		MinimumStock:  req.MinimumStock,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save inventory item", slog.String("item_code", req.ItemCode))
		}
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID), slog.String("item_code", item.ItemCode))
	return &item, nil
}

// GetItemByID retrieves a specific item.
func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find inventory item", slog.String("item_id", itemID))
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems retrieves all items, optionally only those at or below minimum
// stock.
func (s *inventoryService) ListItems(ctx context.Context, lowStockOnly bool) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx, lowStockOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory items")
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// RecordPurchase adds a FIFO cost layer for the item, then books the
// purchase in the ledger as a purchase_cash or purchase_credit event.
func (s *inventoryService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest, creatorUserID string) (*domain.InventoryItem, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: purchase quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: unit cost must be positive", apperrors.ErrValidation)
	}
	movementDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase date %q", apperrors.ErrValidation, req.Date)
	}

	item, err := s.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	totalCost := req.Quantity.Mul(req.UnitCost)
	movement := domain.InventoryMovement{
		MovementID:        uuid.NewString(),
		ItemID:            item.ItemID,
		MovementType:      domain.MovementPurchase,
		MovementDate:      movementDate,
		Quantity:          req.Quantity,
		UnitCost:          req.UnitCost,
		TotalCost:         totalCost,
		RemainingQuantity: req.Quantity,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.inventoryRepo.SavePurchase(ctx, movement); err != nil {
		s.LogError(ctx, err, "Failed to save purchase movement", slog.String("item_id", item.ItemID))
		return nil, fmt.Errorf("failed to save purchase movement: %w", err)
	}

	txType := domain.PurchaseCash
	if req.OnCredit {
		txType = domain.PurchaseCredit
	}
	txReq := dto.CreateTransactionRequest{
		TransactionType: string(txType),
		Date:            req.Date,
		Description:     fmt.Sprintf("Inventory purchase: %s x%s", item.ItemName, req.Quantity.String()),
		Amount:          totalCost,
	}
	if _, err := s.transactionSvc.CreateTransaction(ctx, txReq, creatorUserID); err != nil {
		s.LogError(ctx, err, "Stock updated but purchase entry failed", slog.String("movement_id", movement.MovementID))
		return nil, fmt.Errorf("failed to book purchase entry: %w", err)
	}

	item.Quantity = item.Quantity.Add(req.Quantity)
	item.TotalValue = item.TotalValue.Add(totalCost)
	s.LogInfo(ctx, "Inventory purchase recorded",
		slog.String("item_id", item.ItemID),
		slog.String("quantity", req.Quantity.String()),
		slog.String("total_cost", totalCost.String()))
	return item, nil
}

// RecordUsage consumes stock from the oldest open layers, books the FIFO cost
// as an inventory_usage event and returns the cost charged.
func (s *inventoryService) RecordUsage(ctx context.Context, req dto.RecordUsageRequest, creatorUserID string) (*domain.InventoryItem, decimal.Decimal, error) {
	movementDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: invalid usage date %q", apperrors.ErrValidation, req.Date)
	}

	item, err := s.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	layers, err := s.inventoryRepo.FindOpenPurchaseLayers(ctx, item.ItemID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch FIFO layers", slog.String("item_id", item.ItemID))
		return nil, decimal.Zero, fmt.Errorf("failed to fetch cost layers: %w", err)
	}

	consumption, err := accounting.ConsumeFIFO(layers, req.Quantity)
	if err != nil {
		return nil, decimal.Zero, err
	}

	now := time.Now().UTC()
	movement := domain.InventoryMovement{
		MovementID:   uuid.NewString(),
		ItemID:       item.ItemID,
		MovementType: domain.MovementUsage,
		MovementDate: movementDate,
		Quantity:     req.Quantity,
		TotalCost:    consumption.Cost,
		Notes:        req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.Quantity.IsPositive() {
		movement.UnitCost = consumption.Cost.Div(req.Quantity)
	}

	if err := s.inventoryRepo.SaveUsage(ctx, movement, consumption.UpdatedLayers); err != nil {
		s.LogError(ctx, err, "Failed to save usage movement", slog.String("item_id", item.ItemID))
		return nil, decimal.Zero, fmt.Errorf("failed to save usage movement: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Inventory usage: %s x%s", item.ItemName, req.Quantity.String())
	}
	txReq := dto.CreateTransactionRequest{
		TransactionType: string(domain.InventoryUsage),
		Date:            req.Date,
		Description:     description,
		Amount:          consumption.Cost,
	}
	if _, err := s.transactionSvc.CreateTransaction(ctx, txReq, creatorUserID); err != nil {
		s.LogError(ctx, err, "Stock updated but usage entry failed", slog.String("movement_id", movement.MovementID))
		return nil, decimal.Zero, fmt.Errorf("failed to book usage entry: %w", err)
	}

	item.Quantity = item.Quantity.Sub(req.Quantity)
	item.TotalValue = item.TotalValue.Sub(consumption.Cost)
	s.LogInfo(ctx, "Inventory usage recorded",
		slog.String("item_id", item.ItemID),
		slog.String("quantity", req.Quantity.String()),
		slog.String("cost", consumption.Cost.String()))
	return item, consumption.Cost, nil
}
