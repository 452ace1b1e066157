// Package schedule is the recurring-task engine: it derives recurrence
// rules from treatment frequency text, materializes occurrence batches,
// buckets pending tasks by effective due date, and owns the complete/undo
// state transition. Everything here is pure computation over its inputs;
// reading the clock and persisting results belong to the caller.
package schedule

import (
	"strings"

	"petd/internal/model"
)

// ParseFrequency derives a recurrence rule from free-text like
// "Twice daily" or "Every 3 weeks". The text is advisory, so parsing
// never fails: unrecognized input degrades to a once-a-day rule.
// Weekdays, month day, and end conditions are not derivable from text
// and stay unset. Yearly rules never come from text.
func ParseFrequency(text string) model.RecurrenceRule {
	normalized := strings.ToLower(text)

	// The explicit twice-daily phrase wins over any embedded number.
	if strings.Contains(normalized, "twice daily") {
		return model.RecurrenceRule{Pattern: model.PatternDaily, Interval: model.TwiceDailyInterval}
	}

	interval := 1.0
	if n, ok := firstNumber(normalized); ok && n > 0 {
		interval = float64(n)
	}

	switch {
	// "daily" does not contain "day", so both spellings are checked; the
	// daily branch comes first so "daily for 2 weeks" stays daily.
	case strings.Contains(normalized, "day"), strings.Contains(normalized, "daily"):
		return model.RecurrenceRule{Pattern: model.PatternDaily, Interval: interval}
	case strings.Contains(normalized, "week"):
		return model.RecurrenceRule{Pattern: model.PatternWeekly, Interval: interval}
	case strings.Contains(normalized, "month"):
		return model.RecurrenceRule{Pattern: model.PatternMonthly, Interval: interval}
	default:
		return model.RecurrenceRule{Pattern: model.PatternDaily, Interval: 1}
	}
}

// firstNumber scans for the first run of digits in s.
func firstNumber(s string) (int, bool) {
	n := 0
	found := false
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			if found {
				return n, true
			}
			continue
		}
		found = true
		n = n*10 + int(s[i]-'0')
		if n > 1<<20 {
			// Absurd intervals read as noise, not schedule.
			return 0, false
		}
	}
	return n, found
}
