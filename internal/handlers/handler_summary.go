package handlers

import (
	"net/http"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/SscSPs/postal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type summaryHandler struct {
	reportingService portssvc.ReportingService
}

func registerSummaryRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &summaryHandler{reportingService: reportingService}

	summaries := rg.Group("/summaries")
	{
		summaries.GET("/daily", h.dailySummary)
		summaries.GET("/monthly", h.monthlySummary)
	}
}

// dailySummary godoc
// @Summary Summary of one day
// @Description Totals per location and combined, or for one location.
// @Tags summaries
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param location query int false "Location code"
// @Success 200 {object} dto.DailySummaryResponse
// @Security BearerAuth
// @Router /summaries/daily [get]
func (h *summaryHandler) dailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	date, err := dto.ParseDateOrToday(params.Date)
	if err != nil {
		respondError(c, logger, err, "Failed to build daily summary")
		return
	}
	loc, err := dto.ParseLocationParam(params.Location)
	if err != nil {
		respondError(c, logger, err, "Failed to build daily summary")
		return
	}

	report, err := h.reportingService.DailySummary(c.Request.Context(), date, loc, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to build daily summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(report))
}

// monthlySummary godoc
// @Summary Summary of one month
// @Description Month totals with a per-day breakdown of the days that had postings.
// @Tags summaries
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param location query int false "Location code"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Security BearerAuth
// @Router /summaries/monthly [get]
func (h *summaryHandler) monthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	month, err := domain.ParseMonth(params.Month)
	if err != nil {
		respondError(c, logger, err, "Failed to build monthly summary")
		return
	}
	loc, err := dto.ParseLocationParam(params.Location)
	if err != nil {
		respondError(c, logger, err, "Failed to build monthly summary")
		return
	}

	report, err := h.reportingService.MonthlySummary(c.Request.Context(), month, loc, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to build monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(report))
}
