package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSpecies = errors.New("model: invalid species")

type Species string

const (
	SpeciesDog    Species = "Dog"
	SpeciesCat    Species = "Cat"
	SpeciesBird   Species = "Bird"
	SpeciesRabbit Species = "Rabbit"
	SpeciesOther  Species = "Other"
)

func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	default:
		return false
	}
}

type Pet struct {
	ID        string
	Name      string
	Species   Species
	BirthDate *time.Time
	Notes     string
	CreatedAt time.Time
}

func (p Pet) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: pet id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: pet name is required")
	}
	if !p.Species.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecies, p.Species)
	}
	return nil
}
