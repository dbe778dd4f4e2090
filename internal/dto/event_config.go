package dto

import "github.com/aiinbox/dayflow-api/internal/models"

// EventConfigRequest creates or replaces the configuration for an event
// title. Matching is by exact title string; events renamed in the calendar
// lose their configuration.
type EventConfigRequest struct {
	Title          string  `json:"title" binding:"required,max=200"`
	BaseDifficulty float64 `json:"base_difficulty" binding:"min=0,max=10"`
	TypeTag        string  `json:"type_tag" binding:"omitempty,max=64"`
	Color          string  `json:"color" binding:"omitempty,max=64"`
	IsEnglish      bool    `json:"is_english"`
	Movable        bool    `json:"movable"`
	Skippable      bool    `json:"skippable"`
	NeedPrep       bool    `json:"need_prep"`
	Completable    bool    `json:"completable"`
}

// ToModel converts the request into a persistable configuration.
func (r EventConfigRequest) ToModel() models.EventConfig {
	return models.EventConfig{
		Title:          r.Title,
		BaseDifficulty: r.BaseDifficulty,
		TypeTag:        r.TypeTag,
		Color:          r.Color,
		EventFlags: models.EventFlags{
			IsEnglish:   r.IsEnglish,
			Movable:     r.Movable,
			Skippable:   r.Skippable,
			NeedPrep:    r.NeedPrep,
			Completable: r.Completable,
		},
	}
}
