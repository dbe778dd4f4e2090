package ics

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// parsedEvent is a VEVENT normalized for recurrence expansion. Recurring
// events keep their raw RRULE; overridden instances carry a RECURRENCE-ID.
type parsedEvent struct {
	Source Source

	UID         string
	Summary     string
	Description string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule   string
	ExDates    []time.Time
	Recurrence *time.Time
	IsOverride bool
}

// parseFeed parses one ICS payload into parsedEvents. Malformed VEVENTs are
// logged and skipped so one broken entry cannot take down the whole feed.
func (c *Client) parseFeed(res FetchResult) ([]parsedEvent, error) {
	if len(res.Body) == 0 {
		return nil, fmt.Errorf("feed %s: empty body", res.Source.ID)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("feed %s: parse calendar: %w", res.Source.ID, err)
	}

	events := make([]parsedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(res.Source, ve)
		if perr != nil {
			c.logger.Warn("skipping malformed vevent",
				zap.String("feed_id", res.Source.ID),
				zap.Error(perr))
			continue
		}
		events = append(events, ev)
	}

	c.logger.Debug("ics feed parsed",
		zap.String("feed_id", res.Source.ID),
		zap.Int("event_count", len(events)),
		zap.Bool("from_cache", res.FromCache))
	return events, nil
}

func parseVEvent(src Source, ve *ical.VEvent) (parsedEvent, error) {
	out := parsedEvent{Source: src}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, fmt.Errorf("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}

	start, _ := ve.GetStartAt()
	end, _ := ve.GetEndAt()
	out.Start = start
	out.End = end

	if dtStart := ve.GetProperty(ical.ComponentPropertyDtStart); dtStart != nil {
		if params := dtStart.ICalParameters; params != nil {
			if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
				out.AllDay = true
			}
		}
		if !strings.Contains(dtStart.Value, "T") {
			out.AllDay = true
		}
	}

	if rrule := ve.GetProperty(ical.ComponentPropertyRrule); rrule != nil {
		out.RawRRule = rrule.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, out.Start.Location()); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if rid := ve.GetProperty("RECURRENCE-ID"); rid != nil {
		if t, err := parseICSTime(rid.Value, out.Start.Location()); err == nil {
			out.Recurrence = &t
			out.IsOverride = true
		}
	}

	return out, nil
}

// parseICSTime handles the three basic ICS time shapes: UTC date-time,
// floating date-time and date-only.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, fmt.Errorf("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
