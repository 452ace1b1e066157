package update

import (
	"strings"
	"time"

	"petd/internal/views"
)

const dueDateLayout = "2006-01-02"

func (m Model) renderTodayView() string {
	items := make([]views.CareItemData, 0, len(m.Today.Items))
	for _, item := range m.Today.Items {
		items = append(items, views.CareItemData{
			ID:      item.ID,
			PetName: item.PetName,
			Title:   item.Title,
			Type:    item.Type,
			Bucket:  string(item.Bucket),
			DueAt:   item.DueAt.Format(dueDateLayout),
			DueTime: dueTimeLabel(item.DueAt),
		})
	}
	filter := ""
	if m.PetFilter != "" {
		filter = m.petName(m.PetFilter)
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		PetFilter:  filter,
		Items:      items,
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderPetsView() string {
	pets := make([]views.PetItemData, 0, len(m.Pets.Items))
	for _, pet := range m.Pets.Items {
		pets = append(pets, views.PetItemData{
			ID:      pet.ID,
			Name:    pet.Name,
			Species: string(pet.Species),
			Pending: m.pendingCountForPet(pet.ID),
		})
	}
	selected := ""
	if pet, ok := m.currentPet(); ok {
		selected = pet.ID
	}
	return views.RenderPetsPanel(views.PetsPanelData{Pets: pets, SelectedID: selected})
}

func (m Model) renderTreatmentsView() string {
	items := make([]views.TreatmentItemData, 0, len(m.Treatments.Items))
	for _, tr := range m.Treatments.Items {
		end := ""
		if tr.EndDate != nil {
			end = tr.EndDate.Format(dueDateLayout)
		}
		items = append(items, views.TreatmentItemData{
			ID:        tr.ID,
			PetName:   m.petName(tr.PetID),
			Name:      tr.Name,
			Dosage:    tr.Dosage,
			Frequency: tr.Frequency,
			StartDate: tr.StartDate.Format(dueDateLayout),
			EndDate:   end,
		})
	}
	selected := ""
	notes := ""
	if tr, ok := m.currentTreatment(); ok {
		selected = tr.ID
		notes = views.RenderMarkdown(tr.Notes)
	}
	return views.RenderTreatmentsPanel(views.TreatmentsPanelData{
		Treatments:   items,
		SelectedID:   selected,
		NotesPreview: notes,
	})
}

func (m Model) renderTreatmentEditorIfVisible() string {
	return views.RenderTreatmentEditor(views.TreatmentEditorData{
		Active:        m.Editor.Active,
		PetName:       m.petName(m.Editor.PetID),
		NameInput:     m.nameInput.Value(),
		DosageInput:   m.dosageInput.Value(),
		FrequencyText: m.freqInput.Value(),
		ErrorText:     m.Editor.Err,
		Preview:       m.Editor.Preview,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := []string{
		"1/2/3 switch view",
		"j/k move cursor",
		"enter complete (today) / filter (pets) / save (editor)",
		"u undo last completion",
		"/ command palette",
		"r reload from disk",
		"q quit",
	}
	return "\nhelp:\n" + strings.Join(bindings, "\n")
}

func dueTimeLabel(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return ""
	}
	return t.Format("15:04")
}
