package dto

import "time"

// ForecastQuery selects the day to forecast. Defaults to today when empty.
type ForecastQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ForecastResponse is the generated day forecast.
type ForecastResponse struct {
	Date        string    `json:"date"`
	Forecast    string    `json:"forecast"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
