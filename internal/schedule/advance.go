package schedule

import (
	"errors"
	"time"

	"petd/internal/model"
)

var (
	ErrAlreadyComplete = errors.New("schedule: task is already complete")
	ErrUndoMismatch    = errors.New("schedule: undo snapshot belongs to a different task")
	ErrNothingToUndo   = errors.New("schedule: nothing to undo")
)

// Undo is a one-level snapshot of the completion-relevant task state,
// captured by Complete. Reverting with it restores the exact prior
// (IsComplete, LastCompletedAt, NextDueDate, CompletionCount) values;
// undoing an undo is not supported.
type Undo struct {
	taskID          string
	valid           bool
	isComplete      bool
	lastCompletedAt *time.Time
	nextDueDate     time.Time
	completionCount int
}

// Complete performs the pending -> completed transition at the injected
// time and returns the new task state with an Undo snapshot of the old
// one. A recurring task stays a single row: it flips back to pending with
// NextDueDate advanced by its own rule, stepping from the previous
// NextDueDate rather than from now. A recurring task whose end condition
// is reached, or whose recurrence fields are corrupted, finishes like a
// one-off. Completing an already-complete task is an error.
func Complete(task model.Task, now time.Time) (model.Task, Undo, error) {
	if task.IsComplete {
		return model.Task{}, Undo{}, ErrAlreadyComplete
	}

	undo := snapshot(task)
	completedAt := now
	task.LastCompletedAt = &completedAt
	task.CompletionCount++
	task.IsComplete = true

	if !task.HasUsableRule() {
		return task, undo, nil
	}
	if task.Rule.EndKind == model.EndAfterCount && task.CompletionCount >= task.Rule.EndCount {
		// Series exhausted: the row stays complete, NextDueDate unchanged.
		return task, undo, nil
	}

	next := advance(task.Rule, task.NextDueDate)
	if task.Rule.EndKind == model.EndOnDate && next.After(endOfDay(task.Rule.EndDate)) {
		return task, undo, nil
	}

	task.IsComplete = false
	task.NextDueDate = next
	return task, undo, nil
}

// Revert applies the snapshot, restoring the task's pre-completion state.
func (u Undo) Revert(task model.Task) (model.Task, error) {
	if !u.valid {
		return model.Task{}, ErrNothingToUndo
	}
	if u.taskID != task.ID {
		return model.Task{}, ErrUndoMismatch
	}
	task.IsComplete = u.isComplete
	task.LastCompletedAt = u.lastCompletedAt
	task.NextDueDate = u.nextDueDate
	task.CompletionCount = u.completionCount
	return task, nil
}

func snapshot(task model.Task) Undo {
	return Undo{
		taskID:          task.ID,
		valid:           true,
		isComplete:      task.IsComplete,
		lastCompletedAt: task.LastCompletedAt,
		nextDueDate:     task.NextDueDate,
		completionCount: task.CompletionCount,
	}
}

// advance applies one stepping cycle of the rule to from. The stepping
// mirrors occurrence generation: the twice-daily sentinel moves half a
// day, weekly rules with explicit weekdays probe forward for the next
// allowed day, monthly and yearly steps clamp to real month lengths.
func advance(rule model.RecurrenceRule, from time.Time) time.Time {
	switch rule.Pattern {
	case model.PatternDaily:
		if rule.TwiceDaily() {
			return from.Add(twiceDailyOffset)
		}
		return from.AddDate(0, 0, rule.IntervalSteps())
	case model.PatternWeekly:
		if len(rule.WeekDays) > 0 {
			if next, ok := nextAllowedWeekday(from, rule); ok {
				return next
			}
		}
		return from.AddDate(0, 0, 7*rule.IntervalSteps())
	case model.PatternMonthly:
		day := rule.MonthDay
		if day == 0 {
			day = from.Day()
		}
		return addMonthsClamped(from, rule.IntervalSteps(), day)
	case model.PatternYearly:
		return addYearsClamped(from, rule.IntervalSteps())
	default:
		return from
	}
}
