package storage

import "time"

type Pet struct {
	ID        string
	Name      string
	Species   string
	BirthDate *time.Time
	Notes     string
	CreatedAt time.Time
}

type Treatment struct {
	ID        string
	PetID     string
	Name      string
	Dosage    string
	Frequency string
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
	CreatedAt time.Time
}

// Task is the persisted row shape. Recurrence fields live as flat columns;
// the weekday set is stored as a comma-separated list of weekday numbers
// (0=Sunday..6=Saturday), an encoding private to this package.
type Task struct {
	ID                string
	PetID             string
	Title             string
	Type              string
	DueDate           time.Time
	IsComplete        bool
	Notes             string
	Recurring         bool
	RulePattern       string
	RuleInterval      float64
	RuleWeekDays      string
	RuleMonthDay      int
	RuleEndKind       string
	RuleEndCount      int
	RuleEndDate       *time.Time
	CompletionCount   int
	LastCompletedAt   *time.Time
	NextDueDate       time.Time
	LinkedTreatmentID string
	CreatedAt         time.Time
}

type PetListFilter struct {
	Limit  int
	Offset int
}

type TreatmentListFilter struct {
	PetID  string
	Limit  int
	Offset int
}

type TaskListFilter struct {
	PetID       string
	TreatmentID string
	Complete    *bool
	Limit       int
	Offset      int
}
