package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/SscSPs/postal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type pendingHandler struct {
	pendingService portssvc.PendingPaymentsSvc
}

func registerPendingRoutes(rg *gin.RouterGroup, pendingService portssvc.PendingPaymentsSvc) {
	h := &pendingHandler{pendingService: pendingService}
	rg.GET("/pending", h.listPending)
}

// listPending godoc
// @Summary List unpaid postings
// @Description Oldest posting date first, with the outstanding total.
// @Tags pending
// @Produce json
// @Success 200 {object} dto.PendingResponse
// @Security BearerAuth
// @Router /pending [get]
func (h *pendingHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	postings, err := h.pendingService.ListPending(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondError(c, logger, err, "Failed to list pending payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToPendingResponse(postings))
}
