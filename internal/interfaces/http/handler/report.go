package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/parish/backend/internal/application/report"
	"github.com/parish/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles report-related API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// bind resolves the parish and binds the query into req. It writes the
// error response itself and reports false when the request is unusable.
func (h *ReportHandler) bind(c *gin.Context, req any) (uuid.UUID, bool) {
	parishID, ok := h.parishID(c)
	if !ok {
		return uuid.Nil, false
	}
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return uuid.Nil, false
	}
	return parishID, true
}

// GetLedger godoc
// @ID           getReportLedger
// @Summary      Get ledger report
// @Description  Income and expense of the period grouped by transaction head
// @Tags         reports
// @Produce      json
// @Param        parish_id            query string true  "Parish ID"
// @Param        start_date           query string false "Start date (YYYY-MM-DD)"
// @Param        end_date             query string false "End date (YYYY-MM-DD)"
// @Param        customization        query string false "INCOME_ONLY, EXPENSE_ONLY or BOTH"
// @Param        include_transactions query bool   false "List each head's transactions"
// @Success      200 {object} APIResponse[report.LedgerReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/ledger [get]
func (h *ReportHandler) GetLedger(c *gin.Context) {
	var req reportapp.LedgerRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.Ledger(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetCashBook godoc
// @ID           getReportCashBook
// @Summary      Get cash book
// @Description  Opening balance, statement and closing balance of one bank or of every bank
// @Tags         reports
// @Produce      json
// @Param        parish_id     query string true  "Parish ID"
// @Param        bank          query string true  "Bank name or All"
// @Param        start_date    query string false "Start date (YYYY-MM-DD)"
// @Param        end_date      query string false "End date (YYYY-MM-DD)"
// @Param        customization query string false "INCOME_ONLY, EXPENSE_ONLY or BOTH"
// @Success      200 {object} APIResponse[report.CashBookReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/cash-book [get]
func (h *ReportHandler) GetCashBook(c *gin.Context) {
	var req reportapp.CashBookRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.CashBook(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetNoticeBoard godoc
// @ID           getReportNoticeBoard
// @Summary      Get notice board
// @Description  Families that paid towards a head during the period and those that did not
// @Tags         reports
// @Produce      json
// @Param        parish_id     query string true  "Parish ID"
// @Param        head          query string true  "Transaction head name"
// @Param        start_date    query string false "Start date (YYYY-MM-DD)"
// @Param        end_date      query string false "End date (YYYY-MM-DD)"
// @Param        customization query string false "INCOME_ONLY, EXPENSE_ONLY or BOTH"
// @Success      200 {object} APIResponse[report.NoticeBoardReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/notice-board [get]
func (h *ReportHandler) GetNoticeBoard(c *gin.Context) {
	var req reportapp.NoticeBoardRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.NoticeBoard(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetAramana godoc
// @ID           getReportAramana
// @Summary      Get Aramana report
// @Description  Share owed to the diocese on every head marked Aramana
// @Tags         reports
// @Produce      json
// @Param        parish_id     query string true  "Parish ID"
// @Param        start_date    query string false "Start date (YYYY-MM-DD)"
// @Param        end_date      query string false "End date (YYYY-MM-DD)"
// @Param        customization query string false "INCOME_ONLY, EXPENSE_ONLY or BOTH"
// @Success      200 {object} APIResponse[report.AramanaReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/aramana [get]
func (h *ReportHandler) GetAramana(c *gin.Context) {
	var req reportapp.AramanaRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.Aramana(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetFamilyDues godoc
// @ID           getReportFamilyDues
// @Summary      Get family dues statement
// @Description  Kudishika balance of one family per head, carried from before the period
// @Tags         reports
// @Produce      json
// @Param        parish_id     query string true  "Parish ID"
// @Param        family_id     query string true  "Family ID"
// @Param        start_date    query string false "Start date (YYYY-MM-DD)"
// @Param        end_date      query string false "End date (YYYY-MM-DD)"
// @Param        customization query string false "INCOME_ONLY, EXPENSE_ONLY or BOTH"
// @Success      200 {object} APIResponse[report.FamilyDuesReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/family-dues [get]
func (h *ReportHandler) GetFamilyDues(c *gin.Context) {
	var req reportapp.FamilyDuesRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.FamilyDues(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetPivot godoc
// @ID           getReportPivot
// @Summary      Get fiscal year pivot
// @Description  Monthly totals per head for one April to March fiscal year
// @Tags         reports
// @Produce      json
// @Param        parish_id   query string true  "Parish ID"
// @Param        fiscal_year query int    true  "Fiscal year start, 2023 for 2023-24"
// @Param        type        query string false "INCOME or EXPENSE" default(INCOME)
// @Param        top_n       query int    false "Keep the N largest heads and fold the rest into Others"
// @Success      200 {object} APIResponse[report.PivotReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/pivot [get]
func (h *ReportHandler) GetPivot(c *gin.Context) {
	var req reportapp.PivotRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.Pivot(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetHeadTrend godoc
// @ID           getReportHeadTrend
// @Summary      Get head trend
// @Description  Monthly totals of one head compared across fiscal years
// @Tags         reports
// @Produce      json
// @Param        parish_id query string true  "Parish ID"
// @Param        head_id   query string true  "Transaction head ID"
// @Param        type      query string false "INCOME or EXPENSE" default(INCOME)
// @Param        from_year query int    true  "First fiscal year"
// @Param        to_year   query int    true  "Last fiscal year"
// @Success      200 {object} APIResponse[report.HeadTrendReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/pivot/head-trend [get]
func (h *ReportHandler) GetHeadTrend(c *gin.Context) {
	var req reportapp.HeadTrendRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.HeadTrend(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetIncomeExpense godoc
// @ID           getReportIncomeExpense
// @Summary      Get income against expense
// @Description  Monthly income, expense and net per fiscal year
// @Tags         reports
// @Produce      json
// @Param        parish_id query string true "Parish ID"
// @Param        from_year query int    true "First fiscal year"
// @Param        to_year   query int    true "Last fiscal year"
// @Success      200 {object} APIResponse[report.IncomeExpenseReport]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/pivot/income-expense [get]
func (h *ReportHandler) GetIncomeExpense(c *gin.Context) {
	var req reportapp.IncomeExpenseRequest
	parishID, ok := h.bind(c, &req)
	if !ok {
		return
	}
	result, err := h.reportService.IncomeExpense(c.Request.Context(), parishID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// InvalidateCache godoc
// @ID           invalidateReportCache
// @Summary      Invalidate cached reports
// @Description  Drops every cached report of the parish after its ledger changed
// @Tags         reports
// @Produce      json
// @Param        parish_id query string true "Parish ID"
// @Success      200 {object} APIResponse[CacheInvalidation]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /reports/cache/invalidate [post]
func (h *ReportHandler) InvalidateCache(c *gin.Context) {
	parishID, ok := h.parishID(c)
	if !ok {
		return
	}
	if err := h.reportService.InvalidateCache(c.Request.Context(), parishID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CacheInvalidation{ParishID: parishID, Invalidated: true})
}
