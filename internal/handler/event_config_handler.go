package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
	"github.com/aiinbox/dayflow-api/pkg/response"
)

type eventConfigService interface {
	List(ctx context.Context) ([]models.EventConfig, error)
	Get(ctx context.Context, title string) (*models.EventConfig, error)
	Upsert(ctx context.Context, req dto.EventConfigRequest) (*models.EventConfig, error)
	Delete(ctx context.Context, title string) error
}

// EventConfigHandler exposes per-title event configuration endpoints. Titles
// appear as a path parameter, so clients must URL-encode them.
type EventConfigHandler struct {
	service eventConfigService
}

// NewEventConfigHandler builds the handler.
func NewEventConfigHandler(service eventConfigService) *EventConfigHandler {
	return &EventConfigHandler{service: service}
}

// List godoc
// @Summary List event configurations
// @Tags EventConfigs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /event-configs [get]
func (h *EventConfigHandler) List(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, configs, nil)
}

// Get godoc
// @Summary Get the configuration for an event title
// @Tags EventConfigs
// @Produce json
// @Param title path string true "Event title (URL-encoded)"
// @Success 200 {object} response.Envelope
// @Router /event-configs/{title} [get]
func (h *EventConfigHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), c.Param("title"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Upsert godoc
// @Summary Create or replace an event configuration
// @Tags EventConfigs
// @Accept json
// @Produce json
// @Param payload body dto.EventConfigRequest true "Configuration payload"
// @Success 200 {object} response.Envelope
// @Router /event-configs [put]
func (h *EventConfigHandler) Upsert(c *gin.Context) {
	var req dto.EventConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event config payload"))
		return
	}
	cfg, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Delete godoc
// @Summary Delete an event configuration
// @Tags EventConfigs
// @Param title path string true "Event title (URL-encoded)"
// @Success 204
// @Router /event-configs/{title} [delete]
func (h *EventConfigHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("title")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
