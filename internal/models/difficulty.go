package models

import "time"

// Bonus reasons produced by the difficulty calculator.
const (
	ReasonEnglishEvent     = "English Event"
	ReasonOutsideWorkHours = "Outside Work Hours"
)

// DifficultyResult is the workload score for a single event. A zero base is
// a hard exemption: bonus and total stay zero no matter what.
type DifficultyResult struct {
	Base    float64  `json:"base"`
	Bonus   float64  `json:"bonus"`
	Total   float64  `json:"total"`
	Reasons []string `json:"reasons"`
}

// TypeStat accumulates count and score for one type bucket of a day.
type TypeStat struct {
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// Penalty is a day-level score adjustment recorded by the caller (e.g. a
// missed lunch). Per-event bonus reasons never appear here.
type Penalty struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
	Count  int     `json:"count"`
}

// DayBreakdown is the per-day rollup of scored events. It is rebuilt from
// scratch on every aggregation, never mutated incrementally.
type DayBreakdown struct {
	TotalScore      float64             `json:"total_score"`
	DeepWorkMinutes int                 `json:"deep_work_minutes"`
	EventCount      int                 `json:"event_count"`
	Breakdown       map[string]TypeStat `json:"breakdown"`
	Penalties       []Penalty           `json:"penalties"`
}

// DayStatusLevel is the coarse load classification for a day.
type DayStatusLevel string

const (
	DayStatusHealthy    DayStatusLevel = "healthy"
	DayStatusModerate   DayStatusLevel = "moderate"
	DayStatusBusy       DayStatusLevel = "busy"
	DayStatusOverloaded DayStatusLevel = "overloaded"
)

// SlotTier classifies how contested a found slot is.
type SlotTier int

const (
	// SlotTierFree means the slot overlaps nothing.
	SlotTierFree SlotTier = 1
	// SlotTierSkippable means every overlapping event is skippable.
	SlotTierSkippable SlotTier = 2
	// SlotTierMovable means every overlapping event is movable.
	SlotTierMovable SlotTier = 3
)

// BestSlotResult is the outcome of a slot search.
type BestSlotResult struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Tier  SlotTier  `json:"tier"`
}
