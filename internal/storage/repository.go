package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreatePet(ctx context.Context, in Pet) error
	GetPet(ctx context.Context, id string) (Pet, error)
	UpdatePet(ctx context.Context, in Pet) error
	DeletePet(ctx context.Context, id string) error
	ListPets(ctx context.Context, filter PetListFilter) ([]Pet, error)

	CreateTreatment(ctx context.Context, in Treatment) error
	GetTreatment(ctx context.Context, id string) (Treatment, error)
	UpdateTreatment(ctx context.Context, in Treatment) error
	DeleteTreatment(ctx context.Context, id string) error
	ListTreatments(ctx context.Context, filter TreatmentListFilter) ([]Treatment, error)

	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	// ReplaceTreatmentTasks swaps a treatment's pending generated tasks for
	// a fresh batch in one transaction; completed rows are left as history.
	ReplaceTreatmentTasks(ctx context.Context, treatmentID string, batch []Task) error
}
