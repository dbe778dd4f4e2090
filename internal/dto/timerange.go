package dto

import "github.com/aiinbox/dayflow-api/internal/models"

// ClockTimePayload mirrors models.ClockTime with validation bounds.
type ClockTimePayload struct {
	Hour   int `json:"hour" binding:"min=0,max=23"`
	Minute int `json:"minute" binding:"min=0,max=59"`
}

// TimeRangeRequest creates or replaces a time range definition. A window
// whose end precedes its start is interpreted as wrapping past midnight.
type TimeRangeRequest struct {
	Title     string           `json:"title" binding:"required,max=120"`
	Start     ClockTimePayload `json:"start"`
	End       ClockTimePayload `json:"end"`
	Days      []int            `json:"days" binding:"required,min=1,dive,min=0,max=6"`
	Color     string           `json:"color" binding:"omitempty,max=64"`
	IsEnabled *bool            `json:"is_enabled"`
	IsWork    bool             `json:"is_work"`
	IsVisible *bool            `json:"is_visible"`
}

// ToModel converts the request into a definition ready for persistence.
func (r TimeRangeRequest) ToModel() models.TimeRangeDefinition {
	enabled := true
	if r.IsEnabled != nil {
		enabled = *r.IsEnabled
	}
	visible := true
	if r.IsVisible != nil {
		visible = *r.IsVisible
	}
	days := make([]int64, len(r.Days))
	for i, d := range r.Days {
		days[i] = int64(d)
	}
	return models.TimeRangeDefinition{
		Title:     r.Title,
		Start:     models.ClockTime{Hour: r.Start.Hour, Minute: r.Start.Minute},
		End:       models.ClockTime{Hour: r.End.Hour, Minute: r.End.Minute},
		Days:      days,
		Color:     r.Color,
		IsEnabled: enabled,
		IsWork:    r.IsWork,
		IsVisible: visible,
	}
}
