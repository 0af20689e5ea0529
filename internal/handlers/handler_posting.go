package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/SscSPs/postal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests related to postings.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// registerPostingRoutes registers routes related to postings.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := &postingHandler{postingService: postingService}

	postings := rg.Group("/postings")
	{
		postings.POST("", h.createPosting)
		postings.GET("", h.listPostingsByDay)
		postings.GET("/range", h.listPostingsByRange)
		postings.GET("/:id", h.getPosting)
		postings.POST("/:id/payment", h.markPaid)
	}
}

func parsePostingID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationFailedError("posting id must be a positive integer")
	}
	return id, nil
}

// createPosting godoc
// @Summary Register a posting
// @Description Records a parcel accepted at the counter. Tracking codes are unique.
// @Tags postings
// @Accept json
// @Produce json
// @Param posting body dto.CreatePostingRequest true "Posting details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 409 {object} ErrorResponse "Duplicate tracking code"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	np, err := req.ToNewPosting()
	if err != nil {
		respondError(c, logger, err, "Failed to create posting")
		return
	}

	posting, err := h.postingService.AddPosting(c.Request.Context(), np, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create posting")
		return
	}

	logger.Info("Posting created", slog.Int64("posting_id", posting.PostingID), slog.String("tracking_code", posting.TrackingCode))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(posting))
}

// getPosting godoc
// @Summary Get a posting
// @Tags postings
// @Produce json
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /postings/{id} [get]
func (h *postingHandler) getPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parsePostingID(c)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve posting")
		return
	}

	posting, err := h.postingService.GetPosting(c.Request.Context(), id, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve posting")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingResponse(posting))
}

// listPostingsByDay godoc
// @Summary List the postings of a day
// @Description Newest first. Without location both locations are returned, ordered by location.
// @Tags postings
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param location query int false "Location code"
// @Success 200 {object} dto.ListPostingsResponse
// @Security BearerAuth
// @Router /postings [get]
func (h *postingHandler) listPostingsByDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	date, err := dto.ParseDateOrToday(params.Date)
	if err != nil {
		respondError(c, logger, err, "Failed to list postings")
		return
	}
	loc, err := dto.ParseLocationParam(params.Location)
	if err != nil {
		respondError(c, logger, err, "Failed to list postings")
		return
	}

	postings, err := h.postingService.ListPostingsByDay(c.Request.Context(), date, loc, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list postings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPostingsResponse(postings))
}

// listPostingsByRange godoc
// @Summary List postings between two dates
// @Tags postings
// @Produce json
// @Param from query string true "First day (inclusive)"
// @Param to query string true "Last day (inclusive)"
// @Success 200 {object} dto.ListPostingsResponse
// @Security BearerAuth
// @Router /postings/range [get]
func (h *postingHandler) listPostingsByRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, err := params.Parse()
	if err != nil {
		respondError(c, logger, err, "Failed to list postings")
		return
	}

	postings, err := h.postingService.ListPostingsByRange(c.Request.Context(), from, to, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list postings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPostingsResponse(postings))
}

// markPaid godoc
// @Summary Record the payment of a posting
// @Description A paid posting is only changed again with correction=true.
// @Tags postings
// @Accept json
// @Produce json
// @Param id path int true "Posting ID"
// @Param payment body dto.MarkPaidRequest true "Payment details"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already paid"
// @Security BearerAuth
// @Router /postings/{id}/payment [post]
func (h *postingHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parsePostingID(c)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	payment, err := req.ToPayment()
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	posting, err := h.postingService.MarkPaid(c.Request.Context(), id, payment, userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.Int64("posting_id", posting.PostingID),
		slog.String("method", string(payment.Method)),
		slog.Bool("correction", payment.Correction),
		slog.String("role", roleFrom(c)))
	c.JSON(http.StatusOK, dto.ToPostingResponse(posting))
}
