package dto

import "github.com/aiinbox/dayflow-api/internal/models"

// SlotRequest asks for the best slot of a given duration inside a configured
// time range on one day.
type SlotRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	RangeID         string `json:"range_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=5,max=720"`
}

// SlotResponse carries the winning slot. Tier explains what the caller must
// do with conflicting events: 1 none, 2 skip them, 3 move them.
type SlotResponse struct {
	Slot       models.BestSlotResult `json:"slot"`
	RangeTitle string                `json:"range_title"`
}
