package storage

import (
	"strconv"
	"strings"
	"time"

	"petd/internal/model"
)

// Conversions between persisted rows and domain values. The engine works
// on model types only; how recurrence weekdays are flattened into a column
// is this package's concern.

func PetToModel(in Pet) model.Pet {
	return model.Pet{
		ID:        in.ID,
		Name:      in.Name,
		Species:   model.Species(in.Species),
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}
}

func PetFromModel(in model.Pet) Pet {
	return Pet{
		ID:        in.ID,
		Name:      in.Name,
		Species:   string(in.Species),
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}
}

func TreatmentToModel(in Treatment) model.Treatment {
	return model.Treatment{
		ID:        in.ID,
		PetID:     in.PetID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}
}

func TreatmentFromModel(in model.Treatment) Treatment {
	return Treatment{
		ID:        in.ID,
		PetID:     in.PetID,
		Name:      in.Name,
		Dosage:    in.Dosage,
		Frequency: in.Frequency,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
	}
}

func TaskToModel(in Task) model.Task {
	var endDate time.Time
	if in.RuleEndDate != nil {
		endDate = *in.RuleEndDate
	}
	return model.Task{
		ID:         in.ID,
		PetID:      in.PetID,
		Title:      in.Title,
		Type:       model.TaskType(in.Type),
		DueDate:    in.DueDate,
		IsComplete: in.IsComplete,
		Notes:      in.Notes,
		Recurring:  in.Recurring,
		Rule: model.RecurrenceRule{
			Pattern:  model.RecurrencePattern(in.RulePattern),
			Interval: in.RuleInterval,
			WeekDays: decodeWeekDays(in.RuleWeekDays),
			MonthDay: in.RuleMonthDay,
			EndKind:  model.RecurrenceEnd(in.RuleEndKind),
			EndCount: in.RuleEndCount,
			EndDate:  endDate,
		},
		CompletionCount:   in.CompletionCount,
		LastCompletedAt:   in.LastCompletedAt,
		NextDueDate:       in.NextDueDate,
		LinkedTreatmentID: in.LinkedTreatmentID,
		CreatedAt:         in.CreatedAt,
	}
}

func TaskFromModel(in model.Task) Task {
	var endDate *time.Time
	if !in.Rule.EndDate.IsZero() {
		d := in.Rule.EndDate
		endDate = &d
	}
	return Task{
		ID:                in.ID,
		PetID:             in.PetID,
		Title:             in.Title,
		Type:              string(in.Type),
		DueDate:           in.DueDate,
		IsComplete:        in.IsComplete,
		Notes:             in.Notes,
		Recurring:         in.Recurring,
		RulePattern:       string(in.Rule.Pattern),
		RuleInterval:      in.Rule.Interval,
		RuleWeekDays:      encodeWeekDays(in.Rule.WeekDays),
		RuleMonthDay:      in.Rule.MonthDay,
		RuleEndKind:       string(in.Rule.EndKind),
		RuleEndCount:      in.Rule.EndCount,
		RuleEndDate:       endDate,
		CompletionCount:   in.CompletionCount,
		LastCompletedAt:   in.LastCompletedAt,
		NextDueDate:       in.NextDueDate,
		LinkedTreatmentID: in.LinkedTreatmentID,
		CreatedAt:         in.CreatedAt,
	}
}

func encodeWeekDays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeWeekDays(raw string) []time.Weekday {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			// Rows written by older builds may carry junk; drop it rather
			// than poison the rule.
			continue
		}
		out = append(out, time.Weekday(n))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
