package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

type eventConfigServiceMock struct {
	getErr    error
	deleteErr error
	upserted  *dto.EventConfigRequest
}

func (m *eventConfigServiceMock) List(ctx context.Context) ([]models.EventConfig, error) {
	return []models.EventConfig{{Title: "Standup", BaseDifficulty: 1}}, nil
}

func (m *eventConfigServiceMock) Get(ctx context.Context, title string) (*models.EventConfig, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.EventConfig{Title: title, BaseDifficulty: 2}, nil
}

func (m *eventConfigServiceMock) Upsert(ctx context.Context, req dto.EventConfigRequest) (*models.EventConfig, error) {
	m.upserted = &req
	cfg := req.ToModel()
	return &cfg, nil
}

func (m *eventConfigServiceMock) Delete(ctx context.Context, title string) error {
	return m.deleteErr
}

func TestEventConfigHandlerUpsert(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &eventConfigServiceMock{}
	handler := NewEventConfigHandler(mock)

	body, _ := json.Marshal(dto.EventConfigRequest{Title: "Deep Work", BaseDifficulty: 3, Movable: true})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/event-configs", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Upsert(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.upserted)
	assert.Equal(t, "Deep Work", mock.upserted.Title)
}

func TestEventConfigHandlerUpsertMissingTitle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventConfigHandler(&eventConfigServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/event-configs", bytes.NewReader([]byte(`{"base_difficulty": 2}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Upsert(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventConfigHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventConfigHandler(&eventConfigServiceMock{getErr: appErrors.ErrNotFound})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/event-configs/Unknown", nil)
	c.Params = gin.Params{{Key: "title", Value: "Unknown"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventConfigHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventConfigHandler(&eventConfigServiceMock{})

	r := gin.New()
	r.DELETE("/event-configs/:title", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/event-configs/Standup", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
