package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTaskType = errors.New("model: invalid task type")

type TaskType string

const (
	TaskTypeMedication TaskType = "Medication"
	TaskTypeFeeding    TaskType = "Feeding"
	TaskTypeGrooming   TaskType = "Grooming"
	TaskTypeVetVisit   TaskType = "VetVisit"
	TaskTypeOther      TaskType = "Other"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeMedication, TaskTypeFeeding, TaskTypeGrooming, TaskTypeVetVisit, TaskTypeOther:
		return true
	default:
		return false
	}
}

// Task is one care item for a pet, either a one-off entry or one row of a
// recurring series. The scheduling engine reads and rewrites tasks; the
// storage layer owns persisting them.
type Task struct {
	ID         string
	PetID      string
	Title      string
	Type       TaskType
	DueDate    time.Time
	IsComplete bool
	Notes      string

	Recurring bool
	Rule      RecurrenceRule

	// CompletionCount counts completions of a recurring series, used to
	// exhaust after_count end conditions.
	CompletionCount int
	LastCompletedAt *time.Time
	// NextDueDate is the next occurrence surfaced to the user. For
	// non-recurring tasks it always equals DueDate.
	NextDueDate time.Time

	LinkedTreatmentID string
	CreatedAt         time.Time
}

// HasUsableRule reports whether the task's recurrence fields are intact
// enough to schedule with. A recurring task with a corrupted rule degrades
// to non-recurring behavior rather than failing.
func (t Task) HasUsableRule() bool {
	return t.Recurring && t.Rule.Validate() == nil
}

// EffectiveDueDate is the date used for all classification and ordering:
// the recurrence-aware next due date when one applies, the plain due date
// otherwise.
func (t Task) EffectiveDueDate() time.Time {
	if t.HasUsableRule() && !t.NextDueDate.IsZero() {
		return t.NextDueDate
	}
	return t.DueDate
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.PetID) == "" {
		return errors.New("model: task pet_id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, t.Type)
	}
	if t.DueDate.IsZero() {
		return errors.New("model: task due_date is required")
	}
	if t.Recurring {
		if err := t.Rule.Validate(); err != nil {
			return err
		}
	} else if !t.NextDueDate.IsZero() && !t.NextDueDate.Equal(t.DueDate) {
		return errors.New("model: next_due_date must equal due_date for a non-recurring task")
	}
	return nil
}
