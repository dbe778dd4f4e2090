// Package dto defines the request/response payloads of the HTTP API.
package dto

import (
	"time"

	"github.com/aiinbox/dayflow-api/internal/models"
)

// ScheduleQuery selects the date window of a schedule view. Dates are
// inclusive calendar days in YYYY-MM-DD form.
type ScheduleQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// DayView is one fully analysed calendar day.
type DayView struct {
	Date       string                 `json:"date"`
	Status     models.DayStatusLevel  `json:"status"`
	Stats      models.DayBreakdown    `json:"stats"`
	Events     []models.Event         `json:"events"`
	WorkRanges []models.RangeInstance `json:"work_ranges,omitempty"`
}

// ScheduleViewResponse is the analysed window returned by the schedule
// endpoint. Days are ordered and cover the window with no holes.
type ScheduleViewResponse struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Days        []DayView `json:"days"`
	GeneratedAt time.Time `json:"generated_at"`
}
