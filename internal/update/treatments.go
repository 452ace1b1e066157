package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"petd/internal/model"
)

func (m Model) handleTreatmentsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Treatments.Cursor > 0 {
			m.Treatments.Cursor--
		}
	case "down", "j":
		if m.Treatments.Cursor < len(m.Treatments.Items)-1 {
			m.Treatments.Cursor++
		}
	case "a":
		pet, ok := m.currentPet()
		if !ok {
			m.Status = StatusBar{Text: "add a pet before adding treatments", IsError: true}
			return m
		}
		m.openTreatmentEditor("", pet.ID)
	case "e":
		tr, ok := m.currentTreatment()
		if !ok {
			return m
		}
		m.openTreatmentEditor(tr.ID, tr.PetID)
	case "d":
		tr, ok := m.currentTreatment()
		if !ok {
			return m
		}
		if err := m.deleteSelectedTreatment(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted treatment: %s", tr.Name), IsError: false}
	}
	return m
}

func (m *Model) openTreatmentEditor(treatmentID, petID string) {
	m.Editor = TreatmentEditorState{
		Active:      true,
		TreatmentID: treatmentID,
		PetID:       petID,
	}
	m.nameInput.SetValue("")
	m.dosageInput.SetValue("")
	m.freqInput.SetValue("")
	if treatmentID != "" {
		if tr, ok := m.currentTreatment(); ok && tr.ID == treatmentID {
			m.nameInput.SetValue(tr.Name)
			m.dosageInput.SetValue(tr.Dosage)
			m.freqInput.SetValue(tr.Frequency)
		}
	}
	m.focusEditorField(editorFieldName)
	m.refreshDosePreview()
}

func (m Model) handleEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Editor.Active = false
		m.blurEditorFields()
		m.Status = StatusBar{Text: "treatment editor closed", IsError: false}
		return m
	case "tab":
		m.focusEditorField((m.Editor.Field + 1) % editorFieldCount)
		return m
	case "enter":
		if err := m.saveTreatment(); err != nil {
			m.Editor.Err = err.Error()
			return m
		}
		m.Editor.Active = false
		m.blurEditorFields()
		m.Status = StatusBar{Text: "treatment saved, tasks regenerated", IsError: false}
		return m
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace || msg.Type == tea.KeySpace {
		field := m.editorField()
		var cmd tea.Cmd
		*field, cmd = field.Update(msg)
		_ = cmd
		m.Editor.Err = ""
		m.refreshDosePreview()
	}
	return m
}

func (m *Model) editorField() *textinput.Model {
	switch m.Editor.Field {
	case editorFieldDosage:
		return &m.dosageInput
	case editorFieldFrequency:
		return &m.freqInput
	default:
		return &m.nameInput
	}
}

func (m *Model) focusEditorField(field int) {
	m.Editor.Field = field
	m.blurEditorFields()
	m.editorField().Focus()
}

func (m *Model) blurEditorFields() {
	m.nameInput.Blur()
	m.dosageInput.Blur()
	m.freqInput.Blur()
}

func (m Model) currentTreatment() (model.Treatment, bool) {
	if len(m.Treatments.Items) == 0 {
		return model.Treatment{}, false
	}
	if m.Treatments.Cursor < 0 || m.Treatments.Cursor >= len(m.Treatments.Items) {
		return model.Treatment{}, false
	}
	return m.Treatments.Items[m.Treatments.Cursor], true
}
