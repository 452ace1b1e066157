package schedule

import (
	"sort"
	"time"

	"petd/internal/model"
)

// PetFilterAll disables pet scoping in Classify.
const PetFilterAll = ""

// Buckets partitions pending tasks relative to one calendar day. The
// buckets are pairwise disjoint and together hold every incomplete input
// task that survived the pet filter.
type Buckets struct {
	Overdue  []model.Task
	Today    []model.Task
	Upcoming []model.Task
}

// Classify partitions incomplete tasks into overdue, due-today, and
// upcoming by effective due date against the local-midnight boundaries of
// now's calendar day. Each bucket is sorted ascending by effective due
// date; ties keep input order so rendering stays deterministic. A non-empty
// petID scopes the result to that pet. The input is never mutated.
func Classify(tasks []model.Task, now time.Time, petID string) Buckets {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.AddDate(0, 0, 1).Add(-time.Nanosecond)

	var out Buckets
	for _, task := range tasks {
		if task.IsComplete {
			continue
		}
		if petID != PetFilterAll && task.PetID != petID {
			continue
		}
		due := task.EffectiveDueDate()
		switch {
		case due.Before(startOfToday):
			out.Overdue = append(out.Overdue, task)
		case due.After(endOfToday):
			out.Upcoming = append(out.Upcoming, task)
		default:
			out.Today = append(out.Today, task)
		}
	}

	sortByEffectiveDue(out.Overdue)
	sortByEffectiveDue(out.Today)
	sortByEffectiveDue(out.Upcoming)
	return out
}

func sortByEffectiveDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].EffectiveDueDate().Before(tasks[j].EffectiveDueDate())
	})
}
