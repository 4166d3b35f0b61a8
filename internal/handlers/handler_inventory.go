package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/middleware"
)

// inventoryHandler handles HTTP requests related to stock items and FIFO
// cost tracking.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: is,
	}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/items", h.createItem)
		inventory.GET("/items", h.listItems)
		inventory.GET("/items/:itemID", h.getItem)
		inventory.POST("/purchases", h.recordPurchase)
		inventory.POST("/usages", h.recordUsage)
	}
}

// createItem godoc
// @Summary Register a stock-tracked item
// @Description Creates an inventory item with zero quantity and value
// @Tags inventory
// @Accept json
// @Produce json
// @Param item body dto.CreateInventoryItemRequest true "Item details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Item code already exists"
// @Failure 500 {object} ErrorResponse "Failed to create item"
// @Security BearerAuth
// @Router /inventory/items [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Item code already exists", slog.String("item_code", req.ItemCode))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create item in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create item"})
		}
		return
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// getItem godoc
// @Summary Get an inventory item by ID
// @Description Retrieves one inventory item with its quantity and value
// @Tags inventory
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve item"
// @Security BearerAuth
// @Router /inventory/items/{itemID} [get]
func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Item not found"})
		} else {
			logger.Error("Failed to get item in service", slog.String("item_id", itemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// listItems godoc
// @Summary List inventory items
// @Description Retrieves all active items, optionally only those at or below their minimum stock level
// @Tags inventory
// @Produce json
// @Param lowStockOnly query bool false "Return low-stock items only"
// @Success 200 {array} dto.InventoryItemResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list items"
// @Security BearerAuth
// @Router /inventory/items [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	lowStockOnly, _ := strconv.ParseBool(c.DefaultQuery("lowStockOnly", "false"))

	items, err := h.inventoryService.ListItems(c.Request.Context(), lowStockOnly)
	if err != nil {
		logger.Error("Failed to list items in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list items"})
		return
	}

	resp := make([]dto.InventoryItemResponse, len(items))
	for i := range items {
		resp[i] = dto.ToInventoryItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

// recordPurchase godoc
// @Summary Record a stock purchase
// @Description Adds a FIFO cost layer for the item and books the purchase journal entry
// @Tags inventory
// @Accept json
// @Produce json
// @Param purchase body dto.RecordPurchaseRequest true "Purchase details"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 500 {object} ErrorResponse "Failed to record purchase"
// @Security BearerAuth
// @Router /inventory/purchases [post]
func (h *inventoryHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.inventoryService.RecordPurchase(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Item not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to record purchase in service", slog.String("item_id", req.ItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record purchase"})
		}
		return
	}

	logger.Info("Purchase recorded", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// recordUsage godoc
// @Summary Record stock usage
// @Description Consumes stock from the oldest purchase layers, books the usage journal entry and reports the FIFO cost charged
// @Tags inventory
// @Accept json
// @Produce json
// @Param usage body dto.RecordUsageRequest true "Usage details"
// @Success 201 {object} dto.UsageResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Item not found"
// @Failure 500 {object} ErrorResponse "Failed to record usage"
// @Security BearerAuth
// @Router /inventory/usages [post]
func (h *inventoryHandler) recordUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordUsage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, cost, err := h.inventoryService.RecordUsage(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Item not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to record usage in service", slog.String("item_id", req.ItemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record usage"})
		}
		return
	}

	logger.Info("Usage recorded", slog.String("item_id", item.ItemID), slog.String("cost", cost.String()))
	c.JSON(http.StatusCreated, dto.UsageResponse{
		Item: dto.ToInventoryItemResponse(item),
		Cost: cost,
	})
}
