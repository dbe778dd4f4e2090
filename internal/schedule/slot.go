package schedule

import (
	"time"

	"github.com/aiinbox/dayflow-api/internal/models"
)

const (
	// slotStepMinutes is the fixed scan granularity of the slot search.
	slotStepMinutes = 5
	// maxSlotIterations bounds the scan at a full 24h window (24h / 5min)
	// so a degenerate range definition cannot loop forever.
	maxSlotIterations = 288
)

// FindBestSlot scans the range's window on the given day for a slot of the
// requested duration, stepping in 5-minute increments. The first fully free
// slot wins immediately (tier 1). Otherwise the earliest slot whose
// conflicts are all skippable (tier 2), then all movable (tier 3), is kept.
// Synthetic events never block a slot. Unknown titles fail closed: they are
// neither skippable nor movable. Returns nil when no tier matches.
func FindBestSlot(day time.Time, rangeDef models.TimeRangeDefinition, busyEvents []models.Event, eventFlags map[string]models.EventFlags, durationMinutes int) *models.BestSlotResult {
	rStart, rEnd := rangeDef.Instance(day)
	duration := time.Duration(durationMinutes) * time.Minute

	var best *models.BestSlotResult
	iterations := 0

	for t := rStart; !t.Add(duration).After(rEnd) && iterations < maxSlotIterations; t = t.Add(slotStepMinutes * time.Minute) {
		iterations++
		slotStart := t
		slotEnd := t.Add(duration)

		var overlaps []models.Event
		for _, e := range busyEvents {
			if e.IsSynthetic() {
				continue
			}
			if e.Overlaps(slotStart, slotEnd) {
				overlaps = append(overlaps, e)
			}
		}

		if len(overlaps) == 0 {
			return &models.BestSlotResult{Start: slotStart, End: slotEnd, Tier: models.SlotTierFree}
		}

		if allDisplaceable(overlaps, eventFlags, func(f models.EventFlags, e models.Event) bool {
			return f.Skippable || e.Skippable
		}) {
			if best == nil || best.Tier > models.SlotTierSkippable {
				best = &models.BestSlotResult{Start: slotStart, End: slotEnd, Tier: models.SlotTierSkippable}
			}
			continue
		}

		if allDisplaceable(overlaps, eventFlags, func(f models.EventFlags, e models.Event) bool {
			return f.Movable || e.Movable
		}) {
			if best == nil || best.Tier > models.SlotTierMovable {
				best = &models.BestSlotResult{Start: slotStart, End: slotEnd, Tier: models.SlotTierMovable}
			}
		}
	}

	return best
}

func allDisplaceable(events []models.Event, eventFlags map[string]models.EventFlags, match func(models.EventFlags, models.Event) bool) bool {
	for _, e := range events {
		if !match(eventFlags[e.Title], e) {
			return false
		}
	}
	return true
}
