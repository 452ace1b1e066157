package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"petd/internal/model"
)

func (m Model) handlePetsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Pets.Cursor > 0 {
			m.Pets.Cursor--
		}
	case "down", "j":
		if m.Pets.Cursor < len(m.Pets.Items)-1 {
			m.Pets.Cursor++
		}
	case "enter":
		pet, ok := m.currentPet()
		if !ok {
			return m
		}
		m.PetFilter = pet.ID
		m.CurrentView = ViewToday
		if err := m.refresh(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("showing tasks for %s", pet.Name), IsError: false}
	}
	return m
}

func (m Model) currentPet() (model.Pet, bool) {
	if len(m.Pets.Items) == 0 {
		return model.Pet{}, false
	}
	if m.Pets.Cursor < 0 || m.Pets.Cursor >= len(m.Pets.Items) {
		return model.Pet{}, false
	}
	return m.Pets.Items[m.Pets.Cursor], true
}

func (m Model) pendingCountForPet(petID string) int {
	count := 0
	for _, task := range m.tasks {
		if task.PetID == petID && !task.IsComplete {
			count++
		}
	}
	return count
}
