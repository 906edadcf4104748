package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hisab-backoffice/internal/domain/shared"
	"github.com/hisab-backoffice/internal/report_server/middleware"
	"github.com/hisab-backoffice/internal/report_server/service"
)

const dateLayout = "2006-01-02"

// StatementHandler handles HTTP requests for financial statements
type StatementHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(logger *slog.Logger, reportService service.ReportService) *StatementHandler {
	return &StatementHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// IncomeStatement renders the income statement for the requested period
func (h *StatementHandler) IncomeStatement(c *gin.Context) {
	tenant, query, ok := h.parseQuery(c)
	if !ok {
		return
	}

	statement, err := h.reportService.IncomeStatement(c.Request.Context(), tenant, query)
	if err != nil {
		h.logger.Error("Failed to build income statement",
			"company_id", tenant.CompanyID.String(),
			"error", err,
		)
		RespondInternalError(c)
		return
	}

	RespondOK(c, statement)
}

// BalanceSheet renders the balance sheet for the requested period
func (h *StatementHandler) BalanceSheet(c *gin.Context) {
	tenant, query, ok := h.parseQuery(c)
	if !ok {
		return
	}

	sheet, err := h.reportService.BalanceSheet(c.Request.Context(), tenant, query)
	if err != nil {
		h.logger.Error("Failed to build balance sheet",
			"company_id", tenant.CompanyID.String(),
			"error", err,
		)
		RespondInternalError(c)
		return
	}

	RespondOK(c, sheet)
}

// parseQuery resolves the tenant and the statement parameters, writing the
// error response itself when something is off. Dates default to the start of
// the current year and today; both ends are inclusive.
func (h *StatementHandler) parseQuery(c *gin.Context) (shared.TenantContext, service.ReportQuery, bool) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		RespondUnauthorized(c, "")
		return shared.TenantContext{}, service.ReportQuery{}, false
	}

	var params StatementQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Error("Invalid statement query", "error", err)
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return shared.TenantContext{}, service.ReportQuery{}, false
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if params.FromDate != "" {
		parsed, err := time.Parse(dateLayout, params.FromDate)
		if err != nil {
			RespondBadRequest(c, "Invalid from_date, expected YYYY-MM-DD")
			return shared.TenantContext{}, service.ReportQuery{}, false
		}
		from = parsed
	}
	if params.ToDate != "" {
		parsed, err := time.Parse(dateLayout, params.ToDate)
		if err != nil {
			RespondBadRequest(c, "Invalid to_date, expected YYYY-MM-DD")
			return shared.TenantContext{}, service.ReportQuery{}, false
		}
		to = parsed
	}
	if from.After(to) {
		RespondBadRequest(c, "from_date must not be after to_date")
		return shared.TenantContext{}, service.ReportQuery{}, false
	}

	if !shared.ValidSourceFilter(params.Source) {
		RespondBadRequest(c, "Invalid source filter: "+params.Source)
		return shared.TenantContext{}, service.ReportQuery{}, false
	}

	query := service.ReportQuery{
		Period: shared.DateRange{From: from, To: to},
		Source: params.Source,
		Search: params.Search,
	}
	return tenant, query, true
}
