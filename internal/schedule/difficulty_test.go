package schedule

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiinbox/dayflow-api/internal/models"
)

// monday is an arbitrary fixed Monday used across the engine tests.
var monday = time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func workRange(title string, startHour, endHour int, days ...int64) models.TimeRangeDefinition {
	return models.TimeRangeDefinition{
		Title:     title,
		Start:     models.ClockTime{Hour: startHour},
		End:       models.ClockTime{Hour: endHour},
		Days:      pq.Int64Array(days),
		IsEnabled: true,
		IsWork:    true,
	}
}

func TestCalculateEventDifficultyZeroBaseShortCircuits(t *testing.T) {
	event := models.Event{Title: "Standup", Start: at(monday, 9, 0), End: at(monday, 9, 15)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 10, 17, 1, 2, 3, 4, 5)}
	flags := &models.EventFlags{IsEnglish: true}

	result := CalculateEventDifficulty(event, 0, ranges, flags)

	assert.Zero(t, result.Base)
	assert.Zero(t, result.Bonus)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Reasons)
}

func TestCalculateEventDifficultyInsideWorkHours(t *testing.T) {
	event := models.Event{Title: "Standup", Start: at(monday, 9, 0), End: at(monday, 9, 15)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 9, 17, 1, 2, 3, 4, 5)}

	result := CalculateEventDifficulty(event, 1, ranges, nil)

	assert.Equal(t, 1.0, result.Base)
	assert.Equal(t, 0.0, result.Bonus)
	assert.Equal(t, 1.0, result.Total)
	assert.Empty(t, result.Reasons)
}

func TestCalculateEventDifficultyOutsideWorkHours(t *testing.T) {
	event := models.Event{Title: "Standup", Start: at(monday, 9, 0), End: at(monday, 9, 15)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 10, 17, 1, 2, 3, 4, 5)}

	result := CalculateEventDifficulty(event, 1, ranges, nil)

	assert.Equal(t, 1.0, result.Base)
	assert.Equal(t, 1.0, result.Bonus)
	assert.Equal(t, 2.0, result.Total)
	assert.Equal(t, []string{models.ReasonOutsideWorkHours}, result.Reasons)
}

func TestCalculateEventDifficultyOutsideBonusAppliesOnce(t *testing.T) {
	// Event pokes out of work hours on both sides; still a single bonus.
	event := models.Event{Title: "Marathon", Start: at(monday, 8, 0), End: at(monday, 18, 0)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 9, 17, 1)}

	result := CalculateEventDifficulty(event, 2, ranges, nil)

	assert.Equal(t, 1.0, result.Bonus)
	assert.Equal(t, []string{models.ReasonOutsideWorkHours}, result.Reasons)
}

func TestCalculateEventDifficultyEnglishFlag(t *testing.T) {
	event := models.Event{Title: "English Class", Start: at(monday, 10, 0), End: at(monday, 11, 0)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 9, 17, 1)}

	result := CalculateEventDifficulty(event, 1, ranges, &models.EventFlags{IsEnglish: true})

	assert.Equal(t, 1.0, result.Bonus)
	assert.Equal(t, 2.0, result.Total)
	assert.Equal(t, []string{models.ReasonEnglishEvent}, result.Reasons)
}

func TestCalculateEventDifficultyNoWorkRangesVacuity(t *testing.T) {
	event := models.Event{Title: "Anything", Start: at(monday, 3, 0), End: at(monday, 4, 0)}

	disabled := workRange("Work Hours", 9, 17, 1)
	disabled.IsEnabled = false
	nonWork := workRange("Gym", 6, 7, 1)
	nonWork.IsWork = false

	for _, ranges := range [][]models.TimeRangeDefinition{
		nil,
		{disabled},
		{nonWork},
	} {
		result := CalculateEventDifficulty(event, 1, ranges, nil)
		assert.Equal(t, 0.0, result.Bonus)
		assert.Empty(t, result.Reasons)
	}
}

func TestCalculateEventDifficultyOvernightRange(t *testing.T) {
	// Night shift window wraps past midnight; event sits fully inside it.
	event := models.Event{Title: "Night Deploy", Start: at(monday, 23, 0), End: at(monday.AddDate(0, 0, 1), 1, 0)}
	nightShift := models.TimeRangeDefinition{
		Title:     "Night Shift",
		Start:     models.ClockTime{Hour: 22},
		End:       models.ClockTime{Hour: 6},
		Days:      pq.Int64Array{1},
		IsEnabled: true,
		IsWork:    true,
	}

	result := CalculateEventDifficulty(event, 1, []models.TimeRangeDefinition{nightShift}, nil)

	assert.Equal(t, 0.0, result.Bonus)
	assert.Empty(t, result.Reasons)
}

func TestCalculateEventDifficultyMultiDayEvent(t *testing.T) {
	// Event spans Monday 16:00 to Tuesday 10:00; the work range covers it on
	// both days but the night in between stays uncovered.
	event := models.Event{Title: "Offsite", Start: at(monday, 16, 0), End: at(monday.AddDate(0, 0, 1), 10, 0)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 9, 17, 1, 2)}

	result := CalculateEventDifficulty(event, 1, ranges, nil)

	assert.Equal(t, 1.0, result.Bonus)
	assert.Equal(t, []string{models.ReasonOutsideWorkHours}, result.Reasons)
}

func TestCalculateEventDifficultyAdjacentRangesMerge(t *testing.T) {
	morning := workRange("Morning", 9, 12, 1)
	afternoon := workRange("Afternoon", 12, 17, 1)
	event := models.Event{Title: "Full Day", Start: at(monday, 9, 0), End: at(monday, 17, 0)}

	result := CalculateEventDifficulty(event, 1, []models.TimeRangeDefinition{morning, afternoon}, nil)

	assert.Equal(t, 0.0, result.Bonus)
	assert.Empty(t, result.Reasons)
}

func TestCalculateEventDifficultyIdempotent(t *testing.T) {
	event := models.Event{Title: "Standup", Start: at(monday, 9, 0), End: at(monday, 9, 15)}
	ranges := []models.TimeRangeDefinition{workRange("Work Hours", 10, 17, 1, 2, 3, 4, 5)}
	flags := &models.EventFlags{IsEnglish: true}

	first := CalculateEventDifficulty(event, 1, ranges, flags)
	second := CalculateEventDifficulty(event, 1, ranges, flags)

	require.Equal(t, first, second)
}
