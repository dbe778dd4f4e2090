package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	"github.com/aiinbox/dayflow-api/pkg/config"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

// forecastPromptTemplate frames the generated day forecast. The schedule
// section is an annotated per-day event listing built from the analysed view.
const forecastPromptTemplate = `You are a perceptive and motivating productivity assistant.
Based on the user's schedule below (recent days plus today), write a 1-2 sentence forecast for TODAY (%s).
Will it be a light or heavy day? If the day is overloaded, point at specific events marked [Movable] or [Skippable].
Keep it concise and actionable.

## Schedule
%s

Forecast for TODAY (1-2 sentences):`

// forecastLookbackDays is how much history the prompt includes before today.
const forecastLookbackDays = 7

// CompletionClient abstracts the remote text-generation API.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ScheduleViewer produces analysed schedule windows. Satisfied by
// ScheduleService.
type ScheduleViewer interface {
	View(ctx context.Context, from, to time.Time) (*dto.ScheduleViewResponse, bool, error)
}

// ForecastService generates a short natural-language forecast for one day
// from the analysed schedule around it.
type ForecastService struct {
	client  CompletionClient
	views   ScheduleViewer
	logger  *zap.Logger
	enabled bool
}

// NewForecastService constructs the service.
func NewForecastService(client CompletionClient, views ScheduleViewer, logger *zap.Logger, cfg config.ForecastConfig) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{client: client, views: views, logger: logger, enabled: cfg.Enabled}
}

// ForDay generates the forecast for the given day.
func (s *ForecastService) ForDay(ctx context.Context, day time.Time) (*dto.ForecastResponse, error) {
	if !s.enabled || s.client == nil {
		return nil, appErrors.Clone(appErrors.ErrForecastUnavailable, "forecast generation is disabled")
	}

	from := day.AddDate(0, 0, -forecastLookbackDays)
	view, _, err := s.views.View(ctx, from, day)
	if err != nil {
		return nil, err
	}

	prompt := buildForecastPrompt(day, view)
	text, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("forecast completion failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrForecastUnavailable.Code,
			appErrors.ErrForecastUnavailable.Status, appErrors.ErrForecastUnavailable.Message)
	}

	return &dto.ForecastResponse{
		Date:        day.Format("2006-01-02"),
		Forecast:    text,
		Model:       s.client.Model(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func buildForecastPrompt(day time.Time, view *dto.ScheduleViewResponse) string {
	var sb strings.Builder
	today := day.Format("2006-01-02")

	for _, d := range view.Days {
		label := d.Date
		if d.Date == today {
			label = "TODAY (" + d.Date + ")"
		}
		fmt.Fprintf(&sb, "### %s [status: %s, score: %.1f]\n", label, d.Status, d.Stats.TotalScore)
		wrote := false
		for _, e := range d.Events {
			if e.Kind != models.EventKindNormal {
				continue
			}
			sb.WriteString("- " + e.Title + " (" + e.Start.Format("15:04") + ")" + eventAnnotations(e) + "\n")
			wrote = true
		}
		if !wrote {
			sb.WriteString("No events.\n")
		}
		sb.WriteString("\n")
	}

	return fmt.Sprintf(forecastPromptTemplate, today, strings.TrimSpace(sb.String()))
}

func eventAnnotations(e models.Event) string {
	var tags []string
	if e.Difficulty != nil && e.Difficulty.Total > 0 {
		tags = append(tags, fmt.Sprintf("Difficulty: %.0f", e.Difficulty.Total))
	}
	if e.TypeTag != "" {
		tags = append(tags, "Type: "+e.TypeTag)
	}
	if e.Movable {
		tags = append(tags, "Movable")
	}
	if e.Skippable {
		tags = append(tags, "Skippable")
	}
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}
