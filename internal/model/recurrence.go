package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
	PatternYearly  RecurrencePattern = "yearly"
)

func (p RecurrencePattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	default:
		return false
	}
}

// TwiceDailyInterval encodes two doses per daily cycle, 12 hours apart.
// It is the only non-integral interval a rule may carry.
const TwiceDailyInterval = 0.5

type RecurrenceEnd string

const (
	EndNever      RecurrenceEnd = "never"
	EndAfterCount RecurrenceEnd = "after_count"
	EndOnDate     RecurrenceEnd = "on_date"
)

var (
	ErrInvalidPattern  = errors.New("model: invalid recurrence pattern")
	ErrInvalidInterval = errors.New("model: invalid recurrence interval")
	ErrInvalidMonthDay = errors.New("model: month day must be between 1 and 31")
	ErrInvalidWeekday  = errors.New("model: invalid weekday in recurrence")
	ErrInvalidEnd      = errors.New("model: invalid recurrence end condition")
)

// RecurrenceRule describes how occurrences of a treatment or task repeat.
// A rule is derived on demand (from frequency text or form fields) and is
// treated as immutable once validated.
type RecurrenceRule struct {
	Pattern  RecurrencePattern
	Interval float64
	// WeekDays is meaningful only for weekly rules; empty means every
	// Interval weeks on the start date's weekday.
	WeekDays []time.Weekday
	// MonthDay is meaningful only for monthly rules; zero means the start
	// date's day of month. Targets past a month's end clamp to its last day.
	MonthDay int
	EndKind  RecurrenceEnd
	EndCount int
	EndDate  time.Time
}

func (r RecurrenceRule) Validate() error {
	if !r.Pattern.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, r.Pattern)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, r.Interval)
	}
	if r.Interval != math.Trunc(r.Interval) {
		if r.Interval != TwiceDailyInterval {
			return fmt.Errorf("%w: %v", ErrInvalidInterval, r.Interval)
		}
		if r.Pattern != PatternDaily {
			return fmt.Errorf("%w: twice-daily interval requires daily pattern", ErrInvalidInterval)
		}
	}
	if r.MonthDay < 0 || r.MonthDay > 31 {
		return fmt.Errorf("%w: %d", ErrInvalidMonthDay, r.MonthDay)
	}
	if len(r.WeekDays) > 0 {
		s := make([]int, 0, len(r.WeekDays))
		for _, d := range r.WeekDays {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
			}
			s = append(s, int(d))
		}
		sort.Ints(s)
		for i := 1; i < len(s); i++ {
			if s[i] == s[i-1] {
				return fmt.Errorf("%w: duplicate %s", ErrInvalidWeekday, time.Weekday(s[i]))
			}
		}
	}
	switch r.EndKind {
	case "", EndNever:
	case EndAfterCount:
		if r.EndCount <= 0 {
			return fmt.Errorf("%w: after_count requires a positive count", ErrInvalidEnd)
		}
	case EndOnDate:
		if r.EndDate.IsZero() {
			return fmt.Errorf("%w: on_date requires an end date", ErrInvalidEnd)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEnd, r.EndKind)
	}
	return nil
}

// TwiceDaily reports whether the rule carries the twice-daily sentinel.
func (r RecurrenceRule) TwiceDaily() bool {
	return r.Pattern == PatternDaily && r.Interval == TwiceDailyInterval
}

// IntervalSteps returns the whole-number stepping interval, never below 1.
// The twice-daily sentinel still moves the daily cursor one day at a time,
// so it also reports 1.
func (r RecurrenceRule) IntervalSteps() int {
	if r.Interval < 1 {
		return 1
	}
	return int(r.Interval)
}

// AllowsWeekday reports whether a weekly rule permits the given weekday.
// Rules with no weekday set permit every weekday.
func (r RecurrenceRule) AllowsWeekday(d time.Weekday) bool {
	if len(r.WeekDays) == 0 {
		return true
	}
	for _, w := range r.WeekDays {
		if w == d {
			return true
		}
	}
	return false
}
