package schedule

import (
	"testing"
	"time"

	"petd/internal/model"
)

func testTreatment(start time.Time, end *time.Time) model.Treatment {
	return model.Treatment{
		ID:        "treatment-1",
		PetID:     "pet-1",
		Name:      "Amoxicillin",
		Dosage:    "250mg",
		Frequency: "daily",
		StartDate: start,
		EndDate:   end,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestGenerateDailyTenDayWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternDaily, Interval: 1}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	if len(tasks) != 10 {
		t.Fatalf("expected 10 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		want := start.AddDate(0, 0, i)
		if !task.DueDate.Equal(want) {
			t.Fatalf("task %d: due %s, want %s", i, task.DueDate, want)
		}
		if !task.NextDueDate.Equal(task.DueDate) {
			t.Fatalf("task %d: next due %s diverges from due %s", i, task.NextDueDate, task.DueDate)
		}
		if !task.Recurring || task.Type != model.TaskTypeMedication {
			t.Fatalf("task %d: unexpected shape %+v", i, task)
		}
		if task.LinkedTreatmentID != "treatment-1" || task.PetID != "pet-1" {
			t.Fatalf("task %d: missing treatment link: %+v", i, task)
		}
		if task.Title != "Amoxicillin 250mg" {
			t.Fatalf("task %d: unexpected title %q", i, task.Title)
		}
		if task.ID != "" {
			t.Fatalf("task %d: generated tasks must be unsaved, got id %q", i, task.ID)
		}
	}
}

func TestGenerateTwiceDailySingleDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternDaily, Interval: model.TwiceDailyInterval}

	tasks := Generate(testTreatment(start, datePtr(start)), rule, 0)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 doses, got %d", len(tasks))
	}
	if got := tasks[1].DueDate.Sub(tasks[0].DueDate); got != 12*time.Hour {
		t.Fatalf("expected doses 12h apart, got %s", got)
	}
	if tasks[0].Title != "Amoxicillin 250mg" {
		t.Fatalf("unexpected primary title %q", tasks[0].Title)
	}
	if tasks[1].Title != "Amoxicillin 250mg (Evening)" {
		t.Fatalf("unexpected evening title %q", tasks[1].Title)
	}
}

func TestGenerateEveryOtherDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternDaily, Interval: 2}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	for i, wantDay := range []int{1, 3, 5, 7} {
		if tasks[i].DueDate.Day() != wantDay {
			t.Fatalf("task %d: day %d, want %d", i, tasks[i].DueDate.Day(), wantDay)
		}
	}
}

func TestGenerateWeeklyWithWeekdays(t *testing.T) {
	// 2024-01-01 is a Monday.
	start := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 14, 7, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{
		Pattern:  model.PatternWeekly,
		Interval: 1,
		WeekDays: []time.Weekday{time.Monday, time.Thursday},
	}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	wantDays := []int{1, 4, 8, 11}
	if len(tasks) != len(wantDays) {
		t.Fatalf("expected %d tasks, got %d", len(wantDays), len(tasks))
	}
	for i, task := range tasks {
		if task.DueDate.Day() != wantDays[i] {
			t.Fatalf("task %d: day %d, want %d", i, task.DueDate.Day(), wantDays[i])
		}
		wd := task.DueDate.Weekday()
		if wd != time.Monday && wd != time.Thursday {
			t.Fatalf("task %d: landed on %s", i, wd)
		}
	}
}

func TestGenerateWeeklyWithoutWeekdaysStepsWholeWeeks(t *testing.T) {
	start := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternWeekly, Interval: 2}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, wantDay := range []int{1, 15, 29} {
		if tasks[i].DueDate.Day() != wantDay {
			t.Fatalf("task %d: day %d, want %d", i, tasks[i].DueDate.Day(), wantDay)
		}
	}
}

func TestGenerateMonthlyClampsToMonthEnd(t *testing.T) {
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternMonthly, Interval: 1, MonthDay: 31}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, task := range tasks {
		if got := task.DueDate.Format("2006-01-02"); got != want[i] {
			t.Fatalf("task %d: got %s, want %s", i, got, want[i])
		}
		if task.DueDate.Hour() != 10 {
			t.Fatalf("task %d: lost time of day: %s", i, task.DueDate)
		}
	}
}

func TestGenerateDefaultHorizonApproximatesMonths(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternMonthly, Interval: 1}

	// No end date: window is start + 3*30 days = 2024-04-14.
	tasks := Generate(testTreatment(start, nil), rule, 0)
	want := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, task := range tasks {
		if got := task.DueDate.Format("2006-01-02"); got != want[i] {
			t.Fatalf("task %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestGenerateYearlyClampsLeapDay(t *testing.T) {
	start := time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternYearly, Interval: 1}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	want := []string{"2024-02-29", "2025-02-28", "2026-02-28"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, task := range tasks {
		if got := task.DueDate.Format("2006-01-02"); got != want[i] {
			t.Fatalf("task %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestGenerateWindowBound(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	rules := []model.RecurrenceRule{
		{Pattern: model.PatternDaily, Interval: 3},
		{Pattern: model.PatternDaily, Interval: model.TwiceDailyInterval},
		{Pattern: model.PatternWeekly, Interval: 1, WeekDays: []time.Weekday{time.Friday, time.Sunday}},
		{Pattern: model.PatternMonthly, Interval: 1, MonthDay: 15},
	}
	windowEnd := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	for _, rule := range rules {
		for i, task := range Generate(testTreatment(start, datePtr(end)), rule, 0) {
			if task.DueDate.Before(start) || !task.DueDate.Before(windowEnd) {
				t.Fatalf("rule %s: task %d at %s escapes window", rule.Pattern, i, task.DueDate)
			}
		}
	}
}

func TestGenerateInvertedWindowIsEmpty(t *testing.T) {
	start := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternDaily, Interval: 1}
	if tasks := Generate(testTreatment(start, datePtr(end)), rule, 0); len(tasks) != 0 {
		t.Fatalf("expected empty batch, got %d tasks", len(tasks))
	}
}

func TestGenerateUnknownPatternIsEmpty(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: "lunar", Interval: 1}
	if tasks := Generate(testTreatment(start, nil), rule, 0); len(tasks) != 0 {
		t.Fatalf("expected empty batch for unknown pattern, got %d", len(tasks))
	}
}

func TestGenerateAfterCountCapsBatch(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Pattern: model.PatternDaily, Interval: 1, EndKind: model.EndAfterCount, EndCount: 3}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestGenerateOnDateShrinksWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{
		Pattern:  model.PatternDaily,
		Interval: 1,
		EndKind:  model.EndOnDate,
		EndDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	tasks := Generate(testTreatment(start, datePtr(end)), rule, 0)
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}
	last := tasks[len(tasks)-1].DueDate
	if last.Day() != 5 {
		t.Fatalf("expected last occurrence on the 5th, got %s", last)
	}
}
