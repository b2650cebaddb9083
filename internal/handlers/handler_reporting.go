package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
	"github.com/pennyledger/pennyledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial snapshots.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers reporting routes within an organization.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/summary", h.getReport)
	}
	rg.GET("/transactions", h.listTransactions)
}

// resolvePeriod fills absent period bounds with the current calendar year.
func resolvePeriod(params dto.ReportPeriodParams) (time.Time, time.Time) {
	now := time.Now().UTC()
	to := now
	if params.To != nil {
		to = *params.To
	}
	from := time.Date(to.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if params.From != nil {
		from = *params.From
	}
	return from, to
}

// getDashboard godoc
// @Summary Get the dashboard snapshot
// @Description Headline totals, monthly buckets, top expense categories, recent entries, and full-history account balances for a period
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   from query string false "Period start (YYYY-MM-DD), defaults to Jan 1 of the current year"
// @Param   to query string false "Period end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /organizations/{org_id}/reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetDashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to := resolvePeriod(params)

	resp, err := h.reportingService.GetDashboardSnapshot(c.Request.Context(), organizationID, from, to, userID)
	if err != nil {
		respondReportingError(c, logger, err, "build dashboard")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getReport godoc
// @Summary Get the report snapshot
// @Description Per-type totals, headline figures, monthly buckets, and top expense categories for a period
// @Tags reports
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   from query string false "Period start (YYYY-MM-DD), defaults to Jan 1 of the current year"
// @Param   to query string false "Period end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /organizations/{org_id}/reports/summary [get]
func (h *reportingHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to := resolvePeriod(params)

	resp, err := h.reportingService.GetReportSnapshot(c.Request.Context(), organizationID, from, to, userID)
	if err != nil {
		respondReportingError(c, logger, err, "build report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a page of flattened journal lines with optional text search and status filter
// @Tags transactions
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Param   search query string false "Case-insensitive match on description and account name"
// @Param   status query string false "Status filter; recorded lines are always POSTED"
// @Param   from query string false "Earliest entry date (YYYY-MM-DD)"
// @Param   to query string false "Latest entry date (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{org_id}/transactions [get]
func (h *reportingHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.TransactionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.GetTransactionList(c.Request.Context(), organizationID, userID, params)
	if err != nil {
		respondReportingError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondReportingError maps reporting service errors to HTTP responses.
func respondReportingError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("User forbidden to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
