package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/middleware"
)

// reportHandler handles HTTP requests for financial statements.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportingSvcFacade) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers routes related to financial reports.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// parseAsOfDate reads the asOf query parameter, defaulting to today.
func parseAsOfDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now(), true
	}
	asOf, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

// parsePeriod reads the required startDate and endDate query parameters.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(dto.DateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing startDate, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dto.DateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing endDate, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not be before startDate"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Lists every active account's debit and credit totals as of a date, with an overall balance check
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseAsOfDate(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIncomeStatement godoc
// @Summary Get the income statement
// @Description Summarises revenue and expenses over a period
// @Tags reports
// @Produce json
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description States assets, liabilities and equity as of a date and verifies the accounting equation
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseAsOfDate(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getCashFlow godoc
// @Summary Get the cash flow statement
// @Description Partitions cash movements over a period into operating, investing and financing activities
// @Tags reports
// @Produce json
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetCashFlow(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build cash flow statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}
