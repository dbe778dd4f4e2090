package models

import (
	"time"

	"github.com/lib/pq"
)

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the offset from midnight in minutes.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// TimeRangeDefinition is a recurring weekly time window. Days uses weekday
// integers 0 (Sunday) through 6 (Saturday), evaluated against the start day.
// A window whose end clock time precedes its start wraps past midnight.
type TimeRangeDefinition struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	StartHour   int           `db:"start_hour" json:"-"`
	StartMinute int           `db:"start_minute" json:"-"`
	EndHour     int           `db:"end_hour" json:"-"`
	EndMinute   int           `db:"end_minute" json:"-"`
	Days        pq.Int64Array `db:"days" json:"days"`
	Color       string        `db:"color" json:"color"`
	IsEnabled   bool          `db:"is_enabled" json:"is_enabled"`
	IsWork      bool          `db:"is_work" json:"is_work"`
	IsVisible   bool          `db:"is_visible" json:"is_visible"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`

	Start ClockTime `db:"-" json:"start"`
	End   ClockTime `db:"-" json:"end"`
}

// SyncClock copies the flattened DB columns into the Start/End clock fields.
func (r *TimeRangeDefinition) SyncClock() {
	r.Start = ClockTime{Hour: r.StartHour, Minute: r.StartMinute}
	r.End = ClockTime{Hour: r.EndHour, Minute: r.EndMinute}
}

// SyncColumns copies the clock fields back into the flattened DB columns.
func (r *TimeRangeDefinition) SyncColumns() {
	r.StartHour, r.StartMinute = r.Start.Hour, r.Start.Minute
	r.EndHour, r.EndMinute = r.End.Hour, r.End.Minute
}

// AppliesOn reports whether the range recurs on the given weekday.
func (r TimeRangeDefinition) AppliesOn(day time.Weekday) bool {
	for _, d := range r.Days {
		if int(d) == int(day) {
			return true
		}
	}
	return false
}

// Instance materialises the range on a concrete day, applying the
// overnight-wrap rule when the end clock time precedes the start.
func (r TimeRangeDefinition) Instance(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), r.Start.Hour, r.Start.Minute, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), r.End.Hour, r.End.Minute, 0, 0, day.Location())
	if r.End.Minutes() < r.Start.Minutes() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// RangeInstance is a work range materialised on a specific day.
type RangeInstance struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Definition string    `json:"definition_id,omitempty"`
}
