package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	due := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	task := Task{
		ID:          "task-1",
		PetID:       "pet-1",
		Title:       "Heartworm tablet",
		Type:        TaskTypeMedication,
		DueDate:     due,
		NextDueDate: due,
		CreatedAt:   due,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidType(t *testing.T) {
	task := Task{
		ID:      "task-1",
		PetID:   "pet-1",
		Title:   "Walk",
		Type:    TaskType("Stroll"),
		DueDate: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); !errors.Is(err, ErrInvalidTaskType) {
		t.Fatalf("expected ErrInvalidTaskType, got: %v", err)
	}
}

func TestTaskValidateNonRecurringDateInvariant(t *testing.T) {
	task := Task{
		ID:          "task-1",
		PetID:       "pet-1",
		Title:       "Nail trim",
		Type:        TaskTypeGrooming,
		DueDate:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		NextDueDate: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for diverging next_due_date on non-recurring task")
	}
}

func TestTaskValidateRecurringRequiresValidRule(t *testing.T) {
	task := Task{
		ID:        "task-1",
		PetID:     "pet-1",
		Title:     "Flea drops",
		Type:      TaskTypeMedication,
		DueDate:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Recurring: true,
		Rule:      RecurrenceRule{Pattern: "sometimes", Interval: 1},
	}
	if err := task.Validate(); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got: %v", err)
	}
}

func TestEffectiveDueDate(t *testing.T) {
	due := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	oneOff := Task{DueDate: due, NextDueDate: due}
	if !oneOff.EffectiveDueDate().Equal(due) {
		t.Fatalf("expected plain due date, got %s", oneOff.EffectiveDueDate())
	}

	recurring := Task{
		DueDate:     due,
		NextDueDate: next,
		Recurring:   true,
		Rule:        RecurrenceRule{Pattern: PatternWeekly, Interval: 1},
	}
	if !recurring.EffectiveDueDate().Equal(next) {
		t.Fatalf("expected next due date, got %s", recurring.EffectiveDueDate())
	}
}

func TestEffectiveDueDateDegradesOnCorruptRule(t *testing.T) {
	due := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	task := Task{DueDate: due, NextDueDate: next, Recurring: true}
	// Recurring flag with no pattern must be treated as non-recurring.
	if !task.EffectiveDueDate().Equal(due) {
		t.Fatalf("expected degraded task to use due date, got %s", task.EffectiveDueDate())
	}
}
