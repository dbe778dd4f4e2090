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

type rangeService interface {
	List(ctx context.Context) ([]models.TimeRangeDefinition, error)
	Get(ctx context.Context, id string) (*models.TimeRangeDefinition, error)
	Create(ctx context.Context, req dto.TimeRangeRequest) (*models.TimeRangeDefinition, error)
	Update(ctx context.Context, id string, req dto.TimeRangeRequest) (*models.TimeRangeDefinition, error)
	Delete(ctx context.Context, id string) error
}

// RangeHandler exposes time range CRUD endpoints.
type RangeHandler struct {
	service rangeService
}

// NewRangeHandler builds the handler.
func NewRangeHandler(service rangeService) *RangeHandler {
	return &RangeHandler{service: service}
}

// List godoc
// @Summary List time ranges
// @Tags Ranges
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /ranges [get]
func (h *RangeHandler) List(c *gin.Context) {
	ranges, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ranges, nil)
}

// Get godoc
// @Summary Get a time range
// @Tags Ranges
// @Produce json
// @Param id path string true "Range ID"
// @Success 200 {object} response.Envelope
// @Router /ranges/{id} [get]
func (h *RangeHandler) Get(c *gin.Context) {
	def, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, def, nil)
}

// Create godoc
// @Summary Create a time range
// @Tags Ranges
// @Accept json
// @Produce json
// @Param payload body dto.TimeRangeRequest true "Range payload"
// @Success 201 {object} response.Envelope
// @Router /ranges [post]
func (h *RangeHandler) Create(c *gin.Context) {
	var req dto.TimeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid range payload"))
		return
	}
	def, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, def)
}

// Update godoc
// @Summary Replace a time range
// @Tags Ranges
// @Accept json
// @Produce json
// @Param id path string true "Range ID"
// @Param payload body dto.TimeRangeRequest true "Range payload"
// @Success 200 {object} response.Envelope
// @Router /ranges/{id} [put]
func (h *RangeHandler) Update(c *gin.Context) {
	var req dto.TimeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid range payload"))
		return
	}
	def, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, def, nil)
}

// Delete godoc
// @Summary Delete a time range
// @Tags Ranges
// @Param id path string true "Range ID"
// @Success 204
// @Router /ranges/{id} [delete]
func (h *RangeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
