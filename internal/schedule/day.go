package schedule

import "github.com/aiinbox/dayflow-api/internal/models"

// DefaultTypeBucket collects events without a type assignment.
const DefaultTypeBucket = "Other"

// AggregateDayStats rolls a day's scored events into a fresh DayBreakdown.
// Events without a difficulty result are ignored entirely. Any event with a
// strictly positive total counts as deep work for its full duration,
// regardless of its type bucket. Per-event bonus reasons are not copied into
// Penalties; only day-level adjustments added by the caller live there.
func AggregateDayStats(events []models.Event) models.DayBreakdown {
	breakdown := models.DayBreakdown{
		Breakdown: map[string]models.TypeStat{},
		Penalties: []models.Penalty{},
	}

	for _, e := range events {
		if e.Difficulty == nil {
			continue
		}
		breakdown.TotalScore += e.Difficulty.Total

		tag := e.TypeTag
		if tag == "" {
			tag = DefaultTypeBucket
		}
		stat := breakdown.Breakdown[tag]
		stat.Count++
		stat.Score += e.Difficulty.Total
		breakdown.Breakdown[tag] = stat

		if e.Difficulty.Total > 0 {
			breakdown.DeepWorkMinutes += e.DurationMinutes()
			breakdown.EventCount++
		}
	}

	return breakdown
}

// CalculateDayStatus classifies a day from its total score and hours of
// effortful events. Two independent ladders are evaluated and the worse one
// wins: a day can be overloaded on hours alone or on score alone.
func CalculateDayStatus(totalScore, totalHours float64) models.DayStatusLevel {
	hourLevel := ladderLevel(totalHours, 1, 3, 5)
	scoreLevel := ladderLevel(totalScore, 3, 6, 9)

	level := hourLevel
	if scoreLevel > level {
		level = scoreLevel
	}

	switch level {
	case 0:
		return models.DayStatusHealthy
	case 1:
		return models.DayStatusModerate
	case 2:
		return models.DayStatusBusy
	default:
		return models.DayStatusOverloaded
	}
}

func ladderLevel(value, low, mid, high float64) int {
	switch {
	case value < low:
		return 0
	case value < mid:
		return 1
	case value < high:
		return 2
	default:
		return 3
	}
}
