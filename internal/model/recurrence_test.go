package model

import (
	"errors"
	"testing"
	"time"
)

func TestRecurrenceValidateAcceptsIntegerIntervals(t *testing.T) {
	rule := RecurrenceRule{Pattern: PatternWeekly, Interval: 2, WeekDays: []time.Weekday{time.Monday, time.Thursday}}
	if err := rule.Validate(); err != nil {
		t.Fatalf("expected valid rule, got error: %v", err)
	}
}

func TestRecurrenceValidateTwiceDailySentinel(t *testing.T) {
	rule := RecurrenceRule{Pattern: PatternDaily, Interval: TwiceDailyInterval}
	if err := rule.Validate(); err != nil {
		t.Fatalf("expected twice-daily rule to validate, got: %v", err)
	}
	if !rule.TwiceDaily() {
		t.Fatal("expected TwiceDaily to report true")
	}

	rule.Pattern = PatternWeekly
	if err := rule.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for weekly sentinel, got: %v", err)
	}
}

func TestRecurrenceValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		rule RecurrenceRule
		want error
	}{
		{"unknown pattern", RecurrenceRule{Pattern: "fortnightly", Interval: 1}, ErrInvalidPattern},
		{"zero interval", RecurrenceRule{Pattern: PatternDaily, Interval: 0}, ErrInvalidInterval},
		{"negative interval", RecurrenceRule{Pattern: PatternDaily, Interval: -2}, ErrInvalidInterval},
		{"fractional interval", RecurrenceRule{Pattern: PatternDaily, Interval: 1.5}, ErrInvalidInterval},
		{"month day out of range", RecurrenceRule{Pattern: PatternMonthly, Interval: 1, MonthDay: 32}, ErrInvalidMonthDay},
		{"weekday out of range", RecurrenceRule{Pattern: PatternWeekly, Interval: 1, WeekDays: []time.Weekday{7}}, ErrInvalidWeekday},
		{"duplicate weekday", RecurrenceRule{Pattern: PatternWeekly, Interval: 1, WeekDays: []time.Weekday{time.Monday, time.Monday}}, ErrInvalidWeekday},
		{"after count without count", RecurrenceRule{Pattern: PatternDaily, Interval: 1, EndKind: EndAfterCount}, ErrInvalidEnd},
		{"on date without date", RecurrenceRule{Pattern: PatternDaily, Interval: 1, EndKind: EndOnDate}, ErrInvalidEnd},
		{"unknown end kind", RecurrenceRule{Pattern: PatternDaily, Interval: 1, EndKind: "sometime"}, ErrInvalidEnd},
	}
	for _, tc := range cases {
		if err := tc.rule.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRecurrenceEmptyEndKindMeansNever(t *testing.T) {
	rule := RecurrenceRule{Pattern: PatternMonthly, Interval: 1, MonthDay: 31}
	if err := rule.Validate(); err != nil {
		t.Fatalf("expected empty end kind to validate, got: %v", err)
	}
}

func TestRecurrenceAllowsWeekday(t *testing.T) {
	rule := RecurrenceRule{Pattern: PatternWeekly, Interval: 1, WeekDays: []time.Weekday{time.Monday, time.Friday}}
	if !rule.AllowsWeekday(time.Friday) {
		t.Fatal("expected Friday to be allowed")
	}
	if rule.AllowsWeekday(time.Sunday) {
		t.Fatal("expected Sunday to be rejected")
	}

	open := RecurrenceRule{Pattern: PatternWeekly, Interval: 1}
	if !open.AllowsWeekday(time.Sunday) {
		t.Fatal("expected empty weekday set to allow every day")
	}
}

func TestRecurrenceIntervalSteps(t *testing.T) {
	if got := (RecurrenceRule{Pattern: PatternDaily, Interval: 3}).IntervalSteps(); got != 3 {
		t.Fatalf("expected 3 steps, got %d", got)
	}
	if got := (RecurrenceRule{Pattern: PatternDaily, Interval: TwiceDailyInterval}).IntervalSteps(); got != 1 {
		t.Fatalf("expected twice-daily sentinel to step 1 day, got %d", got)
	}
}
