package model

import (
	"errors"
	"strings"
	"time"
)

// Treatment is a prescribed course of care for a pet. Its free-text
// Frequency is advisory; the scheduling engine derives a RecurrenceRule
// from it when generating occurrences.
type Treatment struct {
	ID        string
	PetID     string
	Name      string
	Dosage    string
	Frequency string
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
	CreatedAt time.Time
}

func (t Treatment) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: treatment id is required")
	}
	if strings.TrimSpace(t.PetID) == "" {
		return errors.New("model: treatment pet_id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: treatment name is required")
	}
	if t.StartDate.IsZero() {
		return errors.New("model: treatment start_date is required")
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return errors.New("model: treatment end_date is before start_date")
	}
	return nil
}
