// Package handler wires HTTP endpoints to the service layer.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiinbox/dayflow-api/internal/dto"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
	"github.com/aiinbox/dayflow-api/pkg/response"
)

type scheduleService interface {
	View(ctx context.Context, from, to time.Time) (*dto.ScheduleViewResponse, bool, error)
	BestSlot(ctx context.Context, req dto.SlotRequest) (*dto.SlotResponse, error)
}

// ScheduleHandler exposes the analysed schedule view and slot suggestions.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds the handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// View godoc
// @Summary Get analysed schedule for a date window
// @Tags Schedule
// @Produce json
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) View(c *gin.Context) {
	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule query"))
		return
	}

	from, _ := time.Parse("2006-01-02", query.From)
	to, _ := time.Parse("2006-01-02", query.To)

	start := time.Now()
	view, cacheHit, err := h.service.View(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, view, nil, meta)
}

// BestSlot godoc
// @Summary Find the best slot for an activity
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.SlotRequest true "Slot query"
// @Success 200 {object} response.Envelope
// @Router /suggestions/slot [post]
func (h *ScheduleHandler) BestSlot(c *gin.Context) {
	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot request"))
		return
	}

	slot, err := h.service.BestSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}
