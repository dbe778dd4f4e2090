package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	"github.com/aiinbox/dayflow-api/internal/schedule"
	"github.com/aiinbox/dayflow-api/pkg/config"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

// CalendarSource yields calendar events for a time window.
type CalendarSource interface {
	EventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
	Location() *time.Location
}

// suggestedActivity is one configured activity the suggestion pass tries to
// place every day, e.g. Lunch for 60 minutes inside the "Lunch" range.
type suggestedActivity struct {
	Title           string
	DurationMinutes int
}

// ScheduleService builds analysed schedule views: it pulls calendar events,
// scores them against the stored configuration, aggregates per-day stats,
// places activity suggestions and detects focus/free-time blocks.
type ScheduleService struct {
	calendar   CalendarSource
	ranges     RangeStore
	configs    EventConfigStore
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        config.ScheduleConfig
	activities []suggestedActivity
}

// NewScheduleService constructs the service. Suggestion activities come from
// configuration as "Title:Minutes" entries; malformed entries are dropped
// with a warning.
func NewScheduleService(
	calendar CalendarSource,
	ranges RangeStore,
	configs EventConfigStore,
	cache *CacheService,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg config.ScheduleConfig,
	suggestCfg config.SuggestionsConfig,
) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ScheduleService{
		calendar: calendar,
		ranges:   ranges,
		configs:  configs,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
	if suggestCfg.Enabled {
		s.activities = parseActivities(suggestCfg.Activities, logger)
	}
	return s
}

func parseActivities(entries []string, logger *zap.Logger) []suggestedActivity {
	activities := make([]suggestedActivity, 0, len(entries))
	for _, entry := range entries {
		title, minutesStr, found := strings.Cut(entry, ":")
		if !found {
			logger.Warn("dropping malformed suggestion activity", zap.String("entry", entry))
			continue
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(minutesStr))
		if err != nil || minutes <= 0 {
			logger.Warn("dropping suggestion activity with bad duration", zap.String("entry", entry))
			continue
		}
		activities = append(activities, suggestedActivity{
			Title:           strings.TrimSpace(title),
			DurationMinutes: minutes,
		})
	}
	return activities
}

// View returns the analysed schedule for the inclusive [from, to] day window.
// The second return value reports whether the response came from cache.
func (s *ScheduleService) View(ctx context.Context, from, to time.Time) (*dto.ScheduleViewResponse, bool, error) {
	if to.Before(from) {
		return nil, false, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"to must not precede from")
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if s.cfg.MaxRangeDays > 0 && days > s.cfg.MaxRangeDays {
		return nil, false, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("window exceeds %d days", s.cfg.MaxRangeDays))
	}

	key := fmt.Sprintf("sched:view:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached dto.ScheduleViewResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	view, eventCount, err := s.buildView(ctx, from, to)
	if err != nil {
		return nil, false, err
	}
	s.metrics.ObserveScheduleCompute(time.Since(start), eventCount)

	if err := s.cache.Set(ctx, key, view, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("schedule view cache write failed", zap.String("key", key), zap.Error(err))
	}
	return view, false, nil
}

func (s *ScheduleService) buildView(ctx context.Context, from, to time.Time) (*dto.ScheduleViewResponse, int, error) {
	loc := s.calendar.Location()
	windowStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	windowEnd := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, loc)

	events, err := s.calendar.EventsBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrCalendarUnavailable.Code,
			appErrors.ErrCalendarUnavailable.Status, appErrors.ErrCalendarUnavailable.Message)
	}

	rangeDefs, err := s.ranges.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	eventConfigs, err := s.configs.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	configByTitle := make(map[string]models.EventConfig, len(eventConfigs))
	flagsByTitle := make(map[string]models.EventFlags, len(eventConfigs))
	for _, cfg := range eventConfigs {
		configByTitle[cfg.Title] = cfg
		flagsByTitle[cfg.Title] = cfg.EventFlags
	}

	scored := s.scoreEvents(events, rangeDefs, configByTitle)

	eventsByDay := map[string][]models.Event{}
	for _, e := range scored {
		key := e.Start.Format("2006-01-02")
		eventsByDay[key] = append(eventsByDay[key], e)
	}

	view := &dto.ScheduleViewResponse{
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC(),
	}

	for day := windowStart; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		dayKey := day.Format("2006-01-02")
		view.Days = append(view.Days, s.buildDay(day, dayKey, eventsByDay[dayKey], rangeDefs, flagsByTitle))
	}

	return view, len(scored), nil
}

// scoreEvents attaches a difficulty result plus config-derived type tag and
// color to every calendar event. Unconfigured titles score at base 1.
func (s *ScheduleService) scoreEvents(events []models.Event, rangeDefs []models.TimeRangeDefinition, configByTitle map[string]models.EventConfig) []models.Event {
	scored := make([]models.Event, len(events))
	for i, e := range events {
		base := 1.0
		var flags *models.EventFlags
		if cfg, ok := configByTitle[e.Title]; ok {
			base = cfg.BaseDifficulty
			f := cfg.EventFlags
			flags = &f
			e.TypeTag = cfg.TypeTag
			if cfg.Color != "" {
				e.Color = cfg.Color
			}
			e.Movable = cfg.Movable
			e.Skippable = cfg.Skippable
		}
		result := schedule.CalculateEventDifficulty(e, base, rangeDefs, flags)
		e.Difficulty = &result
		scored[i] = e
	}
	return scored
}

func (s *ScheduleService) buildDay(day time.Time, dayKey string, dayEvents []models.Event, rangeDefs []models.TimeRangeDefinition, flagsByTitle map[string]models.EventFlags) dto.DayView {
	workInstances := workInstancesOn(day, rangeDefs)

	suggested, penalties := s.suggestActivities(day, dayEvents, rangeDefs, flagsByTitle)

	focus := schedule.DetectFocusRanges(dayEvents)
	freeTime := schedule.DetectFreeTimeZones(dayEvents, workInstances)

	stats := schedule.AggregateDayStats(dayEvents)
	for _, p := range penalties {
		stats.Penalties = append(stats.Penalties, p)
		stats.TotalScore += p.Points * float64(p.Count)
	}

	status := schedule.CalculateDayStatus(stats.TotalScore, float64(stats.DeepWorkMinutes)/60)

	allEvents := make([]models.Event, 0, len(dayEvents)+len(suggested)+len(focus)+len(freeTime))
	allEvents = append(allEvents, dayEvents...)
	allEvents = append(allEvents, suggested...)
	allEvents = append(allEvents, focus...)
	allEvents = append(allEvents, freeTime...)

	return dto.DayView{
		Date:       dayKey,
		Status:     status,
		Stats:      stats,
		Events:     allEvents,
		WorkRanges: workInstances,
	}
}

// suggestActivities tries to place every configured activity on the day.
// Outcomes: a free or skip-conflict slot yields a suggestion event; a
// move-conflict slot yields the event plus a +1 penalty; no slot yields a
// zero-length missed marker at the range end plus a +2 penalty. Days where
// the backing range does not apply, or where a manual event with the same
// title already exists, are left alone.
func (s *ScheduleService) suggestActivities(day time.Time, dayEvents []models.Event, rangeDefs []models.TimeRangeDefinition, flagsByTitle map[string]models.EventFlags) ([]models.Event, []models.Penalty) {
	if len(s.activities) == 0 {
		return nil, nil
	}

	// Title matching is case-insensitive: a manual "lunch" event suppresses
	// the "Lunch" suggestion.
	manualTitles := map[string]bool{}
	busy := make([]models.Event, 0, len(dayEvents))
	for _, e := range dayEvents {
		if e.Kind == models.EventKindNormal {
			manualTitles[strings.ToLower(e.Title)] = true
			if e.Difficulty != nil && e.Difficulty.Total >= 1 {
				busy = append(busy, e)
			}
		}
	}

	var suggested []models.Event
	var penalties []models.Penalty

	for _, activity := range s.activities {
		rangeDef, ok := rangeByTitle(rangeDefs, activity.Title)
		if !ok || !rangeDef.IsEnabled || !rangeDef.AppliesOn(day.Weekday()) {
			s.metrics.RecordSuggestion(activity.Title, "skipped")
			continue
		}
		if manualTitles[strings.ToLower(activity.Title)] {
			s.metrics.RecordSuggestion(activity.Title, "skipped")
			continue
		}

		slot := schedule.FindBestSlot(day, rangeDef, busy, flagsByTitle, activity.DurationMinutes)
		if slot == nil {
			_, rangeEnd := rangeDef.Instance(day)
			suggested = append(suggested, models.Event{
				Title:   "Missed " + activity.Title,
				Start:   rangeEnd,
				End:     rangeEnd,
				Color:   rangeDef.Color,
				Kind:    models.EventKindMarker,
				TypeTag: models.TypeTagMissed,
			})
			penalties = append(penalties, models.Penalty{
				Reason: "Missed " + activity.Title,
				Points: 2,
				Count:  1,
			})
			s.metrics.RecordSuggestion(activity.Title, "missed")
			continue
		}

		suggested = append(suggested, models.Event{
			Title:   activity.Title,
			Start:   slot.Start,
			End:     slot.End,
			Color:   rangeDef.Color,
			Kind:    models.EventKindGenerated,
			TypeTag: models.TypeTagSuggestion,
		})

		if slot.Tier == models.SlotTierMovable {
			penalties = append(penalties, models.Penalty{
				Reason: activity.Title + " Rescheduled",
				Points: 1,
				Count:  1,
			})
			s.metrics.RecordSuggestion(activity.Title, "rescheduled")
		} else {
			s.metrics.RecordSuggestion(activity.Title, "placed")
		}
	}

	return suggested, penalties
}

// BestSlot answers an ad-hoc slot query against one stored range.
func (s *ScheduleService) BestSlot(ctx context.Context, req dto.SlotRequest) (*dto.SlotResponse, error) {
	loc := s.calendar.Location()
	day, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"date must be YYYY-MM-DD")
	}

	rangeDef, err := s.ranges.Get(ctx, req.RangeID)
	if err != nil {
		return nil, err
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1) // overnight windows spill into the next day
	events, err := s.calendar.EventsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCalendarUnavailable.Code,
			appErrors.ErrCalendarUnavailable.Status, appErrors.ErrCalendarUnavailable.Message)
	}

	rangeDefs, err := s.ranges.List(ctx)
	if err != nil {
		return nil, err
	}
	eventConfigs, err := s.configs.List(ctx)
	if err != nil {
		return nil, err
	}
	configByTitle := make(map[string]models.EventConfig, len(eventConfigs))
	flagsByTitle := make(map[string]models.EventFlags, len(eventConfigs))
	for _, cfg := range eventConfigs {
		configByTitle[cfg.Title] = cfg
		flagsByTitle[cfg.Title] = cfg.EventFlags
	}

	busy := make([]models.Event, 0, len(events))
	for _, e := range s.scoreEvents(events, rangeDefs, configByTitle) {
		if e.Difficulty != nil && e.Difficulty.Total >= 1 {
			busy = append(busy, e)
		}
	}

	slot := schedule.FindBestSlot(day, *rangeDef, busy, flagsByTitle, req.DurationMinutes)
	if slot == nil {
		return nil, appErrors.ErrSlotNotFound
	}
	return &dto.SlotResponse{Slot: *slot, RangeTitle: rangeDef.Title}, nil
}

func workInstancesOn(day time.Time, rangeDefs []models.TimeRangeDefinition) []models.RangeInstance {
	var instances []models.RangeInstance
	for _, r := range rangeDefs {
		if !r.IsEnabled || !r.IsWork || !r.AppliesOn(day.Weekday()) {
			continue
		}
		start, end := r.Instance(day)
		instances = append(instances, models.RangeInstance{Start: start, End: end, Definition: r.ID})
	}
	return instances
}

func rangeByTitle(rangeDefs []models.TimeRangeDefinition, title string) (models.TimeRangeDefinition, bool) {
	for _, r := range rangeDefs {
		if r.Title == title {
			return r, true
		}
	}
	return models.TimeRangeDefinition{}, false
}
