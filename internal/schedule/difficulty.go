// Package schedule holds the pure workload analysis core: event difficulty
// scoring, day aggregation and status classification, best-slot search and
// focus/free-time detection. Functions here are deterministic, perform no
// I/O and are safe for concurrent use.
package schedule

import (
	"sort"
	"time"

	"github.com/aiinbox/dayflow-api/internal/models"
)

type interval struct {
	start time.Time
	end   time.Time
}

// CalculateEventDifficulty scores a single event. A zero base difficulty is
// a hard exemption that bypasses every bonus rule. The "Outside Work Hours"
// bonus is only considered when at least one enabled work range exists;
// otherwise every event would trivially fall outside the (empty) union.
func CalculateEventDifficulty(event models.Event, baseDifficulty float64, ranges []models.TimeRangeDefinition, flags *models.EventFlags) models.DifficultyResult {
	if baseDifficulty == 0 {
		return models.DifficultyResult{Reasons: []string{}}
	}

	reasons := []string{}
	var bonus float64

	if flags != nil && flags.IsEnglish {
		reasons = append(reasons, models.ReasonEnglishEvent)
		bonus++
	}

	workRanges := make([]models.TimeRangeDefinition, 0, len(ranges))
	for _, r := range ranges {
		if r.IsEnabled && r.IsWork {
			workRanges = append(workRanges, r)
		}
	}

	if len(workRanges) > 0 {
		covered := workCoverage(event.Start, event.End, workRanges)
		if covered < event.End.Sub(event.Start) {
			reasons = append(reasons, models.ReasonOutsideWorkHours)
			bonus++
		}
	}

	return models.DifficultyResult{
		Base:    baseDifficulty,
		Bonus:   bonus,
		Total:   baseDifficulty + bonus,
		Reasons: reasons,
	}
}

// workCoverage computes how much of [evtStart, evtEnd) is covered by the
// union of the work range instances on every calendar day the event spans.
func workCoverage(evtStart, evtEnd time.Time, workRanges []models.TimeRangeDefinition) time.Duration {
	var slices []interval

	day := startOfDay(evtStart)
	lastDay := startOfDay(evtEnd)
	for !day.After(lastDay) {
		for _, r := range workRanges {
			if !r.AppliesOn(day.Weekday()) {
				continue
			}
			rStart, rEnd := r.Instance(day)

			intStart := laterOf(rStart, evtStart)
			intEnd := earlierOf(rEnd, evtEnd)
			if intStart.Before(intEnd) {
				slices = append(slices, interval{start: intStart, end: intEnd})
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	var covered time.Duration
	for _, m := range mergeIntervals(slices) {
		covered += m.end.Sub(m.start)
	}
	return covered
}

// mergeIntervals collapses overlapping or adjacent intervals into a disjoint
// set, sorted by start.
func mergeIntervals(in []interval) []interval {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].start.Before(in[j].start) })

	merged := make([]interval, 0, len(in))
	current := in[0]
	for _, next := range in[1:] {
		if !next.start.After(current.end) {
			if next.end.After(current.end) {
				current.end = next.end
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
