package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	"github.com/aiinbox/dayflow-api/pkg/config"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

type fakeViewer struct {
	view *dto.ScheduleViewResponse
	err  error
}

func (f *fakeViewer) View(ctx context.Context, from, to time.Time) (*dto.ScheduleViewResponse, bool, error) {
	return f.view, false, f.err
}

type fakeCompleter struct {
	prompt string
	text   string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func (f *fakeCompleter) Model() string { return "test-model" }

func sampleView() *dto.ScheduleViewResponse {
	score := 3.0
	return &dto.ScheduleViewResponse{
		From: "2024-11-10",
		To:   "2024-11-11",
		Days: []dto.DayView{
			{Date: "2024-11-10", Status: models.DayStatusHealthy, Stats: models.DayBreakdown{}},
			{
				Date:   "2024-11-11",
				Status: models.DayStatusModerate,
				Stats:  models.DayBreakdown{TotalScore: score},
				Events: []models.Event{
					{
						Title:      "Standup",
						Start:      at(monday, 9, 0),
						End:        at(monday, 9, 15),
						Movable:    true,
						Difficulty: &models.DifficultyResult{Base: 1, Total: 1},
					},
					{Title: "Focus Time", Kind: models.EventKindRange, Start: at(monday, 10, 0), End: at(monday, 12, 0)},
				},
			},
		},
	}
}

func TestForecastServiceForDay(t *testing.T) {
	completer := &fakeCompleter{text: "Busy morning, light afternoon."}
	svc := NewForecastService(completer, &fakeViewer{view: sampleView()}, zap.NewNop(),
		config.ForecastConfig{Enabled: true})

	resp, err := svc.ForDay(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-11", resp.Date)
	assert.Equal(t, "Busy morning, light afternoon.", resp.Forecast)
	assert.Equal(t, "test-model", resp.Model)

	// The prompt carries the annotated schedule, not the synthetic overlays.
	assert.Contains(t, completer.prompt, "TODAY (2024-11-11)")
	assert.Contains(t, completer.prompt, "Standup (09:00) [Difficulty: 1, Movable]")
	assert.NotContains(t, completer.prompt, "Focus Time")
	assert.Contains(t, completer.prompt, "No events.")
}

func TestForecastServiceDisabled(t *testing.T) {
	svc := NewForecastService(&fakeCompleter{}, &fakeViewer{view: sampleView()}, zap.NewNop(),
		config.ForecastConfig{Enabled: false})

	_, err := svc.ForDay(context.Background(), monday)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForecastUnavailable.Code, appErrors.FromError(err).Code)
}

func TestForecastServiceUpstreamFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("timeout")}
	svc := NewForecastService(completer, &fakeViewer{view: sampleView()}, zap.NewNop(),
		config.ForecastConfig{Enabled: true})

	_, err := svc.ForDay(context.Background(), monday)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForecastUnavailable.Code, appErrors.FromError(err).Code)
}
