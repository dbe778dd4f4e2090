package models

import "time"

// EventFlags are per-title behaviour switches. Movable and Skippable are the
// two displaceability tiers the slot finder understands; everything defaults
// to false, so an unconfigured title can never be displaced.
type EventFlags struct {
	IsEnglish   bool `db:"is_english" json:"is_english,omitempty"`
	Movable     bool `db:"movable" json:"movable,omitempty"`
	Skippable   bool `db:"skippable" json:"skippable,omitempty"`
	NeedPrep    bool `db:"need_prep" json:"need_prep,omitempty"`
	Completable bool `db:"completable" json:"completable,omitempty"`
}

// EventConfig is the per-title configuration record. The title string is the
// primary key; renaming a calendar event silently orphans its configuration.
type EventConfig struct {
	Title          string  `db:"title" json:"title"`
	BaseDifficulty float64 `db:"base_difficulty" json:"base_difficulty"`
	TypeTag        string  `db:"type_tag" json:"type_tag,omitempty"`
	Color          string  `db:"color" json:"color,omitempty"`
	EventFlags
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
