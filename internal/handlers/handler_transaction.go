package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/middleware"
	"github.com/ukmbooks/ukm_bookkeeping_app/pkg/metrics"
)

// transactionHandler handles HTTP requests that record business events
// without requiring accounting knowledge.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	collector          *metrics.Collector
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, collector *metrics.Collector) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		collector:          collector,
	}
}

// registerTransactionRoutes registers routes related to business transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, collector *metrics.Collector) {
	h := newTransactionHandler(transactionService, collector)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.POST("/preview", h.previewTransaction)
	}
}

// createTransaction godoc
// @Summary Record a business transaction
// @Description Classifies a business event into a balanced journal entry and runs it through the posting workflow
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown transaction type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transaction_type", req.TransactionType))
	entry, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownTransactionType) {
			logger.Warn("Unknown transaction type")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			respondJournalError(c, logger, err, "record transaction")
		}
		return
	}

	h.collector.RecordEntryCreated(string(entry.SourceType))
	if entry.Status == domain.StatusPosted {
		h.collector.RecordEntryPosted()
	}

	logger.Info("Transaction recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference_no", entry.ReferenceNo),
		slog.String("status", string(entry.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// previewTransaction godoc
// @Summary Preview a transaction's journal lines
// @Description Shows the debit and credit lines a business event would produce, without persisting anything
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {array} dto.JournalLineResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unknown transaction type"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions/preview [post]
func (h *transactionHandler) previewTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	lines, err := h.transactionService.Classify(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownTransactionType) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to classify transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to classify transaction"})
		}
		return
	}

	resp := make([]dto.JournalLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = dto.JournalLineResponse{
			AccountCode: line.AccountCode,
			EntryType:   line.EntryType,
			Amount:      line.Amount,
		}
	}
	c.JSON(http.StatusOK, resp)
}
