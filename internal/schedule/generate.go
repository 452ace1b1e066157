package schedule

import (
	"strings"
	"time"

	"petd/internal/model"
)

// DefaultHorizonMonths bounds generation when a treatment has no end date.
const DefaultHorizonMonths = 3

// horizonMonthDays is the deliberate 30-day-month approximation used only
// for the default horizon, never once an explicit end date exists.
const horizonMonthDays = 30

const eveningSuffix = " (Evening)"

const twiceDailyOffset = 12 * time.Hour

// Generate materializes every scheduled occurrence of a treatment inside
// its window as unsaved tasks, ordered by occurrence date. The window is
// [StartDate, EndDate] when the treatment has an end date, otherwise
// [StartDate, StartDate+horizonMonths*30d]. The upper bound is inclusive
// at calendar-day granularity, so a twice-daily evening dose on the end
// date still falls inside the window. An on_date end condition can only
// shrink the window; an after_count condition caps the batch size.
// Generation never fails for a validated rule; an unrecognized pattern
// yields an empty batch.
func Generate(t model.Treatment, rule model.RecurrenceRule, horizonMonths int) []model.Task {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	start := t.StartDate
	end := start.AddDate(0, 0, horizonMonths*horizonMonthDays)
	if t.EndDate != nil {
		end = *t.EndDate
	}
	if rule.EndKind == model.EndOnDate && !rule.EndDate.IsZero() && rule.EndDate.Before(end) {
		end = rule.EndDate
	}
	end = endOfDay(end)
	if start.After(end) {
		return nil
	}

	limit := -1
	if rule.EndKind == model.EndAfterCount {
		limit = rule.EndCount
	}

	var out []model.Task
	emit := func(at time.Time, evening bool) bool {
		if limit >= 0 && len(out) >= limit {
			return false
		}
		out = append(out, newOccurrence(t, rule, at, evening))
		return true
	}

	switch rule.Pattern {
	case model.PatternDaily:
		for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, rule.IntervalSteps()) {
			if !emit(cursor, false) {
				return out
			}
			if rule.TwiceDaily() {
				second := cursor.Add(twiceDailyOffset)
				if !second.After(end) && !emit(second, true) {
					return out
				}
			}
		}
	case model.PatternWeekly:
		generateWeekly(start, end, rule, emit)
	case model.PatternMonthly:
		day := rule.MonthDay
		if day == 0 {
			day = start.Day()
		}
		for cursor := start; !cursor.After(end); cursor = addMonthsClamped(cursor, rule.IntervalSteps(), day) {
			if !emit(cursor, false) {
				return out
			}
		}
	case model.PatternYearly:
		for cursor := start; !cursor.After(end); cursor = addYearsClamped(cursor, rule.IntervalSteps()) {
			if !emit(cursor, false) {
				return out
			}
		}
	}
	return out
}

// generateWeekly walks the window day-by-day when explicit weekdays are
// set: a bounded search of at most seven probes finds the next allowed
// weekday, falling back to whole-week stepping if none matches. Without
// weekdays it steps whole weeks from the start date.
func generateWeekly(start, end time.Time, rule model.RecurrenceRule, emit func(time.Time, bool) bool) {
	if len(rule.WeekDays) == 0 {
		for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 7*rule.IntervalSteps()) {
			if !emit(cursor, false) {
				return
			}
		}
		return
	}

	cursor := start
	for !cursor.After(end) {
		if !rule.AllowsWeekday(cursor.Weekday()) {
			next, ok := nextAllowedWeekday(cursor, rule)
			if !ok {
				cursor = cursor.AddDate(0, 0, 7*rule.IntervalSteps())
				continue
			}
			cursor = next
			continue
		}
		if !emit(cursor, false) {
			return
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
}

// nextAllowedWeekday probes up to seven days past from for an allowed
// weekday. With a well-formed weekday set it always finds one; the bound
// guards against a corrupted set looping forever.
func nextAllowedWeekday(from time.Time, rule model.RecurrenceRule) (time.Time, bool) {
	probe := from
	for i := 0; i < 7; i++ {
		probe = probe.AddDate(0, 0, 1)
		if rule.AllowsWeekday(probe.Weekday()) {
			return probe, true
		}
	}
	return time.Time{}, false
}

func newOccurrence(t model.Treatment, rule model.RecurrenceRule, at time.Time, evening bool) model.Task {
	title := strings.TrimSpace(t.Name + " " + t.Dosage)
	if evening {
		title += eveningSuffix
	}
	return model.Task{
		PetID:             t.PetID,
		Title:             title,
		Type:              model.TaskTypeMedication,
		DueDate:           at,
		Recurring:         true,
		Rule:              rule,
		NextDueDate:       at,
		LinkedTreatmentID: t.ID,
	}
}

// addMonthsClamped advances by whole months and lands on monthDay, clamped
// to the target month's actual length, so a day-31 rule hits April 30
// rather than rolling into May.
func addMonthsClamped(from time.Time, months, monthDay int) time.Time {
	anchor := time.Date(from.Year(), from.Month(), 1, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	target := anchor.AddDate(0, months, 0)
	day := monthDay
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

// addYearsClamped keeps month and day across year steps, clamping Feb 29
// to Feb 28 off leap years.
func addYearsClamped(from time.Time, years int) time.Time {
	y := from.Year() + years
	day := from.Day()
	if last := daysInMonth(y, from.Month()); day > last {
		day = last
	}
	return time.Date(y, from.Month(), day, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
