package models

import "time"

// EventKind distinguishes real calendar events from synthetic overlay events
// produced by the analysis layer.
type EventKind string

const (
	// EventKindNormal is a plain calendar event (empty string on the wire).
	EventKindNormal EventKind = ""
	// EventKindRange is a synthetic span such as a focus range.
	EventKindRange EventKind = "range"
	// EventKindZone is a synthetic background zone such as free time.
	EventKindZone EventKind = "zone"
	// EventKindMarker is a zero-length annotation such as a missed activity.
	EventKindMarker EventKind = "marker"
	// EventKindGenerated is an ephemeral suggested event.
	EventKindGenerated EventKind = "generated"
)

// Type tags attached to synthetic events.
const (
	TypeTagFocus      = "DYNAMIC_FOCUS"
	TypeTagFreeTime   = "FREE_TIME"
	TypeTagSuggestion = "ACTIVITY_SUGGESTION"
	TypeTagMissed     = "ACTIVITY_MISSED"
)

// NonFreeMarker is the opt-in content marker that makes a zero-difficulty
// zone event count as busy for free-time detection.
const NonFreeMarker = "[nonFree::true]"

// Event is a calendar event within the analysis window. Title is the join
// key for all per-event configuration: renaming an event disassociates it
// from its difficulty, flags and type assignment.
type Event struct {
	ID             string            `json:"id,omitempty"`
	Title          string            `json:"title"`
	Content        string            `json:"content,omitempty"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	AllDay         bool              `json:"all_day,omitempty"`
	CalendarID     string            `json:"calendar_id,omitempty"`
	RecurrenceRule string            `json:"recurrence_rule,omitempty"`
	Attendees      []string          `json:"attendees,omitempty"`
	Color          string            `json:"color,omitempty"`
	Kind           EventKind         `json:"kind,omitempty"`
	TypeTag        string            `json:"type_tag,omitempty"`
	Movable        bool              `json:"movable,omitempty"`
	Skippable      bool              `json:"skippable,omitempty"`
	Difficulty     *DifficultyResult `json:"difficulty,omitempty"`
}

// DurationMinutes returns the event length in whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// Overlaps reports whether the event intersects [start, end).
func (e Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// IsSynthetic reports whether the event is an overlay artifact rather than a
// real calendar entry.
func (e Event) IsSynthetic() bool {
	switch e.Kind {
	case EventKindMarker, EventKindZone, EventKindRange:
		return true
	}
	return false
}
