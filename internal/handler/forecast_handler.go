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

type forecastService interface {
	ForDay(ctx context.Context, day time.Time) (*dto.ForecastResponse, error)
}

// ForecastHandler exposes the AI day forecast endpoint.
type ForecastHandler struct {
	service forecastService
	loc     *time.Location
}

// NewForecastHandler builds the handler. loc is the calendar display
// timezone used to resolve "today".
func NewForecastHandler(service forecastService, loc *time.Location) *ForecastHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ForecastHandler{service: service, loc: loc}
}

// Get godoc
// @Summary Generate a day forecast
// @Tags Forecast
// @Produce json
// @Param date query string false "Day to forecast (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope
// @Router /forecast [get]
func (h *ForecastHandler) Get(c *gin.Context) {
	var query dto.ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid forecast query"))
		return
	}

	day := time.Now().In(h.loc)
	if query.Date != "" {
		day, _ = time.ParseInLocation("2006-01-02", query.Date, h.loc)
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.loc)

	forecast, err := h.service.ForDay(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, forecast, nil)
}
