package ics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/models"
)

// maxOccurrencesPerEvent caps recurrence expansion per VEVENT so a hostile
// or broken RRULE cannot blow up a window query.
const maxOccurrencesPerEvent = 1000

// EventsBetween fetches all configured feeds and returns their events
// expanded into the [from, to] window, converted to the client's timezone
// and sorted by start time. Returns an error only when every feed failed.
func (c *Client) EventsBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	results := c.FetchAll(ctx)
	if len(c.sources) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("all %d calendar feeds unavailable", len(c.sources))
	}

	var parsed []parsedEvent
	for _, res := range results {
		events, err := c.parseFeed(res)
		if err != nil {
			c.logger.Warn("ics feed unusable", zap.String("feed_id", res.Source.ID), zap.Error(err))
			continue
		}
		parsed = append(parsed, events...)
	}

	expanded := c.expand(parsed, from, to)
	sort.Slice(expanded, func(i, j int) bool { return expanded[i].Start.Before(expanded[j].Start) })
	return expanded, nil
}

// expand turns parsed VEVENTs into concrete event instances inside the
// window. Overrides (RECURRENCE-ID) replace the matching base occurrence.
func (c *Client) expand(events []parsedEvent, from, to time.Time) []models.Event {
	baseByUID := map[string][]parsedEvent{}
	overridesByUID := map[string][]parsedEvent{}
	for _, ev := range events {
		if ev.IsOverride && ev.Recurrence != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
		}
	}

	var out []models.Event
	for uid, bases := range baseByUID {
		overrides := overridesByUID[uid]
		for _, ev := range bases {
			if ev.RawRRule == "" {
				out = append(out, c.expandSingle(ev, overrides, from, to)...)
				continue
			}
			occ, truncated := c.expandRecurring(ev, overrides, from, to)
			if truncated {
				c.logger.Warn("recurrence expansion truncated",
					zap.String("uid", uid),
					zap.Int("cap", maxOccurrencesPerEvent))
			}
			out = append(out, occ...)
		}
	}
	return out
}

func (c *Client) expandSingle(ev parsedEvent, overrides []parsedEvent, from, to time.Time) []models.Event {
	start, end := ev.Start, ev.End
	if o, ok := overrideFor(overrides, start); ok {
		ev, start, end = o, o.Start, o.End
	}
	if end.Before(from) || start.After(to) {
		return nil
	}
	return []models.Event{c.toEvent(ev, start, end)}
}

func (c *Client) expandRecurring(ev parsedEvent, overrides []parsedEvent, from, to time.Time) ([]models.Event, bool) {
	rule, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		c.logger.Warn("unparseable RRULE",
			zap.String("uid", ev.UID),
			zap.String("rrule", ev.RawRRule),
			zap.Error(err))
		return nil, false
	}
	rule.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	starts := set.Between(from.In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	truncated := false
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
		truncated = true
	}

	duration := ev.End.Sub(ev.Start)
	out := make([]models.Event, 0, len(starts))
	for _, start := range starts {
		var end time.Time
		if ev.AllDay {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			end = start.Add(24 * time.Hour)
		} else {
			end = start.Add(duration)
		}

		instance := ev
		if o, ok := overrideFor(overrides, start); ok {
			instance, start, end = o, o.Start, o.End
		}
		out = append(out, c.toEvent(instance, start, end))
	}
	return out, truncated
}

func overrideFor(overrides []parsedEvent, start time.Time) (parsedEvent, bool) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.In(start.Location()).Equal(start) {
			return ov, true
		}
	}
	return parsedEvent{}, false
}

func (c *Client) toEvent(ev parsedEvent, start, end time.Time) models.Event {
	startLocal := start.In(c.location)
	return models.Event{
		ID:             fmt.Sprintf("%s/%s", ev.UID, startLocal.Format(time.RFC3339)),
		Title:          ev.Summary,
		Content:        ev.Description,
		Start:          startLocal,
		End:            end.In(c.location),
		AllDay:         ev.AllDay,
		CalendarID:     ev.Source.ID,
		RecurrenceRule: ev.RawRRule,
	}
}
