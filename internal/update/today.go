package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"petd/internal/schedule"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncSelectedTaskToTodayCursor()
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Items)-1 {
			m.Today.Cursor++
		}
		m.syncSelectedTaskToTodayCursor()
	case "enter":
		item, ok := m.currentTodayItem()
		if !ok {
			m.Status = StatusBar{Text: "nothing to complete", IsError: true}
			return m
		}
		if err := m.completeTask(item.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", item.Title), IsError: false}
	case "u":
		id, err := m.undoLast()
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("undid completion of %s", id), IsError: false}
	case "esc":
		if m.PetFilter != schedule.PetFilterAll {
			m.PetFilter = schedule.PetFilterAll
			if err := m.refresh(); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m
			}
			m.Status = StatusBar{Text: "pet filter cleared", IsError: false}
		}
	}
	return m
}

func (m *Model) syncSelectedTaskToTodayCursor() {
	if selected, ok := m.currentTodayItem(); ok {
		m.SelectedTaskID = selected.ID
	}
}

func (m Model) currentTodayItem() (TodayItem, bool) {
	if len(m.Today.Items) == 0 {
		return TodayItem{}, false
	}
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Items) {
		return TodayItem{}, false
	}
	return m.Today.Items[m.Today.Cursor], true
}
