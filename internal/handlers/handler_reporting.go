package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
	"github.com/generalbooks/general_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// getBalanceSummary godoc
// @Summary Account balance summary
// @Description Per-account net balances grouped by account type as of a date
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Param accountType query string false "Filter by account type"
// @Param showZero query bool false "Include accounts with zero balance"
// @Success 200 {object} dto.AccountBalanceSummaryResponse
// @Router /workplaces/{workplace_id}/reports/balance-summary [get]
func (h *reportingHandler) getBalanceSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	var accountType *domain.AccountType
	if raw := c.Query("accountType"); raw != "" {
		t := domain.AccountType(raw)
		if !t.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid accountType filter"})
			return
		}
		accountType = &t
	}

	showZero, _ := strconv.ParseBool(c.DefaultQuery("showZero", "false"))

	summary, err := h.reportingService.AccountBalanceSummary(c.Request.Context(), workplaceID, asOf, accountType, showZero)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build balance summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountBalanceSummaryResponse(summary))
}

// getAccountStatement godoc
// @Summary Account statement
// @Description The account's activity over a date range with a running balance
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param account_id path string true "Account ID"
// @Param from query string false "Start date (yyyy-mm-dd)"
// @Param to query string false "End date (yyyy-mm-dd)"
// @Success 200 {object} dto.AccountStatementResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /workplaces/{workplace_id}/accounts/{account_id}/statement [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")
	accountID := c.Param("account_id")

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	statement, err := h.reportingService.AccountStatement(c.Request.Context(), workplaceID, accountID, from, to)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build account statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountStatementResponse(statement))
}

// getCashFlow godoc
// @Summary Cash flow statement
// @Description Cash movement over a period split into operating, investing and financing
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param from query string false "Start date (yyyy-mm-dd)"
// @Param to query string false "End date (yyyy-mm-dd)"
// @Success 200 {object} dto.CashFlowResponse
// @Router /workplaces/{workplace_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	statement, err := h.reportingService.CashFlow(c.Request.Context(), workplaceID, from, to)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build cash flow statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(statement))
}

// getExpenseReport godoc
// @Summary Expense report
// @Description Expense accounts ranked by net spend with percentage shares
// @Tags reports
// @Produce json
// @Param workplace_id path string true "Workplace ID"
// @Param from query string false "Start date (yyyy-mm-dd)"
// @Param to query string false "End date (yyyy-mm-dd)"
// @Success 200 {object} dto.ExpenseReportResponse
// @Router /workplaces/{workplace_id}/reports/expenses [get]
func (h *reportingHandler) getExpenseReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workplaceID := c.Param("workplace_id")

	from, ok := parseDateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.ExpenseReport(c.Request.Context(), workplaceID, from, to)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build expense report")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseReportResponse(report))
}

// registerReportingRoutes registers report routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	group.GET("/accounts/:account_id/statement", h.getAccountStatement)

	reports := group.Group("/reports")
	{
		reports.GET("/balance-summary", h.getBalanceSummary)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/expenses", h.getExpenseReport)
	}
}
