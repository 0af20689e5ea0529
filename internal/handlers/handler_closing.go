package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/SscSPs/postal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles HTTP requests related to daily closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

// registerClosingRoutes registers routes related to closings.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := &closingHandler{closingService: closingService}

	closings := rg.Group("/closings")
	{
		closings.POST("", h.closeDay)
		closings.GET("", h.listClosings)
		closings.GET("/:date/:location", h.getClosing)
		closings.GET("/:date/:location/report", h.getClosingReport)
		closings.GET("/:date/:location/revisions", h.listRevisions)
	}
}

// closeDay godoc
// @Summary Close a day at one location
// @Description Computes the totals from the stored postings and replaces any previous closing of the key.
// @Tags closings
// @Accept json
// @Produce json
// @Param closing body dto.CloseDayRequest true "Closing details"
// @Success 201 {object} dto.ClosingReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No postings for the day and location"
// @Security BearerAuth
// @Router /closings [post]
func (h *closingHandler) closeDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	closeReq, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, err, "Failed to close day")
		return
	}

	report, err := h.closingService.CloseDay(c.Request.Context(), closeReq, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to close day")
		return
	}

	logger.Info("Day closed",
		slog.String("key", report.Closing.Key().String()),
		slog.Int("revision", report.Closing.Revision),
		slog.Int("total_postings", report.Closing.TotalPostings),
		slog.String("role", roleFrom(c)))
	c.JSON(http.StatusCreated, dto.ToClosingReportResponse(report))
}

// getClosing godoc
// @Summary Get the closing of a day and location
// @Tags closings
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param location path int true "Location code"
// @Success 200 {object} dto.ClosingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/{date}/{location} [get]
func (h *closingHandler) getClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, err := dto.ParseClosingKey(c.Param("date"), c.Param("location"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve closing")
		return
	}

	closing, err := h.closingService.GetClosing(c.Request.Context(), key, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve closing")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosingResponse(closing))
}

// getClosingReport godoc
// @Summary Closing with the postings it covers
// @Tags closings
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param location path int true "Location code"
// @Success 200 {object} dto.ClosingReportResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /closings/{date}/{location}/report [get]
func (h *closingHandler) getClosingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, err := dto.ParseClosingKey(c.Param("date"), c.Param("location"))
	if err != nil {
		respondError(c, logger, err, "Failed to build closing report")
		return
	}

	report, err := h.closingService.GetClosingReport(c.Request.Context(), key, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to build closing report")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosingReportResponse(report))
}

// listClosings godoc
// @Summary List closings between two dates
// @Tags closings
// @Produce json
// @Param from query string true "First day (inclusive)"
// @Param to query string true "Last day (inclusive)"
// @Success 200 {object} dto.ListClosingsResponse
// @Security BearerAuth
// @Router /closings [get]
func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, err := params.Parse()
	if err != nil {
		respondError(c, logger, err, "Failed to list closings")
		return
	}

	closings, err := h.closingService.ListClosings(c.Request.Context(), from, to, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list closings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClosingsResponse(closings))
}

// listRevisions godoc
// @Summary Revision history of a closing
// @Tags closings
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param location path int true "Location code"
// @Success 200 {object} dto.ListRevisionsResponse
// @Security BearerAuth
// @Router /closings/{date}/{location}/revisions [get]
func (h *closingHandler) listRevisions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, err := dto.ParseClosingKey(c.Param("date"), c.Param("location"))
	if err != nil {
		respondError(c, logger, err, "Failed to list closing revisions")
		return
	}

	revisions, err := h.closingService.ListRevisions(c.Request.Context(), key, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list closing revisions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRevisionsResponse(key, revisions))
}
