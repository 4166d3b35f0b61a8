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

// journalHandler handles HTTP requests related to journal entries and the
// posting workflow.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	collector      *metrics.Collector
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, collector *metrics.Collector) *journalHandler {
	return &journalHandler{
		journalService: js,
		collector:      collector,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, collector *metrics.Collector) {
	h := newJournalHandler(journalService, collector)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:entryID", h.getJournal)
		journals.DELETE("/:entryID", h.deleteJournal)
		journals.POST("/:entryID/approve", h.approveJournal)
		journals.POST("/:entryID/reject", h.rejectJournal)
		journals.POST("/:entryID/post", h.postJournal)
	}
}

// respondJournalError maps a journal service error to an HTTP response.
// The posting workflow handlers share the same error surface.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
	case errors.Is(err, apperrors.ErrAlreadyPosted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalancedEntry), errors.Is(err, apperrors.ErrAccountInactive):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Journal operation failed in service", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createJournal godoc
// @Summary Create a manual journal entry
// @Description Validates a balanced line set and persists the entry. Entries below the approval threshold are posted in the same call.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input, unbalanced lines or inactive account"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create journal entry"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondJournalError(c, logger, err, "create journal entry")
		return
	}

	h.collector.RecordEntryCreated(string(entry.SourceType))
	if entry.Status == domain.StatusPosted {
		h.collector.RecordEntryPosted()
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference_no", entry.ReferenceNo),
		slog.String("status", string(entry.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry by ID
// @Description Retrieves a journal entry with its lines
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal entry not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journals/{entryID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournals godoc
// @Summary List journal entries
// @Description Retrieves a paginated list of journal entries, filtered by status, account or date range
// @Tags journals
// @Produce json
// @Param status query string false "Entry status" Enums(pending, approved, rejected, posted)
// @Param accountCode query string false "Only entries touching this account"
// @Param startDate query string false "Entry date from (YYYY-MM-DD)"
// @Param endDate query string false "Entry date to (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondJournalError(c, logger, err, "list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteJournal godoc
// @Summary Delete a journal entry
// @Description Removes an entry that has not yet been posted. Posted entries are immutable.
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "Journal entry deleted"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal entry not found"
// @Failure 409 {object} ErrorResponse "Entry already posted"
// @Failure 500 {object} ErrorResponse "Failed to delete journal entry"
// @Security BearerAuth
// @Router /journals/{entryID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID, requestingUserID); err != nil {
		respondJournalError(c, logger, err, "delete journal entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// approveJournal godoc
// @Summary Approve a pending journal entry
// @Description Moves a pending entry to approved and posts it. The approver must differ from the creator.
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Creator cannot approve their own entry"
// @Failure 404 {object} ErrorResponse "Journal entry not found"
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Failure 500 {object} ErrorResponse "Failed to approve journal entry"
// @Security BearerAuth
// @Router /journals/{entryID}/approve [post]
func (h *journalHandler) approveJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.ApproveEntry(c.Request.Context(), entryID, approverUserID)
	if err != nil {
		h.collector.RecordPostingFailure()
		respondJournalError(c, logger, err, "approve journal entry")
		return
	}

	h.collector.RecordEntryPosted()
	logger.Info("Journal entry approved and posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// rejectJournal godoc
// @Summary Reject a pending journal entry
// @Description Moves a pending entry to rejected. Rejected entries never touch account balances.
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal entry not found"
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Failure 500 {object} ErrorResponse "Failed to reject journal entry"
// @Security BearerAuth
// @Router /journals/{entryID}/reject [post]
func (h *journalHandler) rejectJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.RejectEntry(c.Request.Context(), entryID, approverUserID)
	if err != nil {
		respondJournalError(c, logger, err, "reject journal entry")
		return
	}

	h.collector.RecordEntryRejected()
	logger.Info("Journal entry rejected", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postJournal godoc
// @Summary Post an approved journal entry
// @Description Applies an approved entry's lines to account balances
// @Tags journals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal entry not found"
// @Failure 409 {object} ErrorResponse "Entry already posted or not approved"
// @Failure 500 {object} ErrorResponse "Failed to post journal entry"
// @Security BearerAuth
// @Router /journals/{entryID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, requestingUserID)
	if err != nil {
		h.collector.RecordPostingFailure()
		respondJournalError(c, logger, err, "post journal entry")
		return
	}

	h.collector.RecordEntryPosted()
	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
