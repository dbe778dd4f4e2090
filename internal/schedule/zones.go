package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/aiinbox/dayflow-api/internal/models"
)

const (
	// focusGapToleranceMinutes is the largest gap absorbed into a cluster.
	focusGapToleranceMinutes = 15
	// focusMinSpanMinutes is the minimum cluster span worth flagging.
	focusMinSpanMinutes = 60
	// freeTimeMinMinutes is the smallest gap reported as free time.
	freeTimeMinMinutes = 60

	focusRangeColor   = "#FF0000"
	freeTimeFillColor = "rgba(200, 255, 200, 0.3)"
)

// DetectFocusRanges clusters a day's effortful events (difficulty > 0) into
// contiguous blocks, absorbing gaps of up to 15 minutes, and emits a
// synthetic "Focus Time" range for every cluster spanning more than an hour.
// Cluster ends are clamped to the end of the day the cluster started on.
func DetectFocusRanges(events []models.Event) []models.Event {
	candidates := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Kind != models.EventKindNormal {
			continue
		}
		if e.Difficulty != nil && e.Difficulty.Total > 0 {
			candidates = append(candidates, e)
		}
	}

	byDay := groupByDay(candidates)

	var results []models.Event
	for _, day := range sortedDays(byDay) {
		dayEvents := byDay[day]
		sort.Slice(dayEvents, func(i, j int) bool { return dayEvents[i].Start.Before(dayEvents[j].Start) })

		var cluster []models.Event
		flush := func() {
			if len(cluster) == 0 {
				return
			}
			start := cluster[0].Start
			end := clusterEnd(cluster)
			if end.Sub(start) > focusMinSpanMinutes*time.Minute {
				if eod := endOfDay(start); end.After(eod) {
					end = eod
				}
				results = append(results, models.Event{
					Title:   "Focus Time",
					Start:   start,
					End:     end,
					Color:   focusRangeColor,
					Kind:    models.EventKindRange,
					TypeTag: models.TypeTagFocus,
				})
			}
		}

		for _, evt := range dayEvents {
			if len(cluster) == 0 {
				cluster = []models.Event{evt}
				continue
			}
			gap := evt.Start.Sub(clusterEnd(cluster))
			if gap <= focusGapToleranceMinutes*time.Minute {
				cluster = append(cluster, evt)
			} else {
				flush()
				cluster = []models.Event{evt}
			}
		}
		flush()
	}

	return results
}

// DetectFreeTimeZones walks each work range instance and emits a synthetic
// "Free Time" zone for every gap of at least an hour not occupied by a busy
// event. Busy means difficulty >= 1, or a zone event opted in through the
// [nonFree::true] content marker. Days without a work range are skipped.
func DetectFreeTimeZones(events []models.Event, workRanges []models.RangeInstance) []models.Event {
	busy := make([]models.Event, 0, len(events))
	for _, e := range events {
		switch {
		case e.Kind == models.EventKindNormal && e.Difficulty != nil && e.Difficulty.Total >= 1:
			busy = append(busy, e)
		case e.Kind == models.EventKindZone && strings.Contains(e.Content, models.NonFreeMarker):
			busy = append(busy, e)
		}
	}

	busyByDay := groupByDay(busy)

	rangesByDay := map[string][]models.RangeInstance{}
	for _, r := range workRanges {
		key := r.Start.Format("2006-01-02")
		rangesByDay[key] = append(rangesByDay[key], r)
	}

	days := make([]string, 0, len(rangesByDay))
	for day := range rangesByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var results []models.Event
	for _, day := range days {
		dayEvents := busyByDay[day]
		sort.Slice(dayEvents, func(i, j int) bool { return dayEvents[i].Start.Before(dayEvents[j].Start) })

		for _, rng := range rangesByDay[day] {
			pointer := rng.Start

			for _, evt := range dayEvents {
				if !evt.Overlaps(rng.Start, rng.End) {
					continue
				}
				if evt.Start.After(pointer) && evt.Start.Sub(pointer) >= freeTimeMinMinutes*time.Minute {
					results = append(results, freeTimeZone(pointer, evt.Start))
				}
				if evt.End.After(pointer) {
					pointer = evt.End
				}
			}

			if rng.End.After(pointer) && rng.End.Sub(pointer) >= freeTimeMinMinutes*time.Minute {
				results = append(results, freeTimeZone(pointer, rng.End))
			}
		}
	}

	return results
}

func freeTimeZone(start, end time.Time) models.Event {
	return models.Event{
		Title:   "Free Time",
		Start:   start,
		End:     end,
		Color:   freeTimeFillColor,
		Kind:    models.EventKindZone,
		TypeTag: models.TypeTagFreeTime,
	}
}

// groupByDay buckets events by the calendar day of their start.
func groupByDay(events []models.Event) map[string][]models.Event {
	byDay := map[string][]models.Event{}
	for _, e := range events {
		key := e.Start.Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}

func sortedDays(byDay map[string][]models.Event) []string {
	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func clusterEnd(cluster []models.Event) time.Time {
	end := cluster[0].End
	for _, c := range cluster[1:] {
		if c.End.After(end) {
			end = c.End
		}
	}
	return end
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
