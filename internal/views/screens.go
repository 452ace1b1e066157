package views

import (
	"fmt"
	"strings"
)

type CareItemData struct {
	ID      string
	PetName string
	Title   string
	Type    string
	Bucket  string
	DueAt   string
	DueTime string
}

type TodayPanelData struct {
	PetFilter  string
	Items      []CareItemData
	SelectedID string
}

type PetItemData struct {
	ID      string
	Name    string
	Species string
	Pending int
}

type PetsPanelData struct {
	Pets       []PetItemData
	SelectedID string
}

type TreatmentItemData struct {
	ID        string
	PetName   string
	Name      string
	Dosage    string
	Frequency string
	StartDate string
	EndDate   string
}

type TreatmentsPanelData struct {
	Treatments   []TreatmentItemData
	SelectedID   string
	NotesPreview string
}

type TreatmentEditorData struct {
	Active        bool
	PetName       string
	NameInput     string
	DosageInput   string
	FrequencyText string
	ErrorText     string
	Preview       []string
}

func RenderTodayPanel(data TodayPanelData) string {
	overdue := make([]CareItemData, 0)
	today := make([]CareItemData, 0)
	upcoming := make([]CareItemData, 0)
	for _, item := range data.Items {
		switch item.Bucket {
		case "Overdue":
			overdue = append(overdue, item)
		case "Today":
			today = append(today, item)
		default:
			upcoming = append(upcoming, item)
		}
	}

	var b strings.Builder
	b.WriteString("today:\n")
	if data.PetFilter != "" {
		b.WriteString(fmt.Sprintf("filter: pet=%s\n", data.PetFilter))
	}
	b.WriteString("actions: [j/k]move [enter]done [u]undo [1]today [2]pets [3]treatments\n")
	renderCareSection(&b, "Overdue", overdue, data.SelectedID)
	renderCareSection(&b, "Today", today, data.SelectedID)
	renderCareSection(&b, "Upcoming", upcoming, data.SelectedID)
	return strings.TrimSpace(b.String())
}

func RenderPetsPanel(data PetsPanelData) string {
	var b strings.Builder
	b.WriteString("pets:\n")
	b.WriteString("actions: [j/k]move [enter]filter-today\n")
	if len(data.Pets) == 0 {
		b.WriteString("(no pets yet)")
		return b.String()
	}
	for _, pet := range data.Pets {
		cursor := " "
		if data.SelectedID == pet.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s) pending:%d\n", cursor, pet.Name, pet.Species, pet.Pending))
	}
	return strings.TrimSpace(b.String())
}

func RenderTreatmentsPanel(data TreatmentsPanelData) string {
	var b strings.Builder
	b.WriteString("treatments:\n")
	b.WriteString("actions: [j/k]move [a]add [e]edit [d]delete\n")
	if len(data.Treatments) == 0 {
		b.WriteString("(no treatments yet)")
		return b.String()
	}
	for _, tr := range data.Treatments {
		cursor := " "
		if data.SelectedID == tr.ID {
			cursor = ">"
		}
		span := tr.StartDate
		if tr.EndDate != "" {
			span += " -> " + tr.EndDate
		}
		b.WriteString(fmt.Sprintf("%s %s: %s %s | %s | %s\n", cursor, tr.PetName, tr.Name, tr.Dosage, tr.Frequency, span))
	}
	if data.NotesPreview != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(data.NotesPreview)
	}
	return strings.TrimSpace(b.String())
}

func RenderTreatmentEditor(data TreatmentEditorData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\ntreatment-editor:\n")
	b.WriteString("keys: [tab] field [enter] save [esc] close\n")
	b.WriteString(fmt.Sprintf("pet: %s\n", data.PetName))
	b.WriteString(fmt.Sprintf("name: %s\n", data.NameInput))
	b.WriteString(fmt.Sprintf("dosage: %s\n", data.DosageInput))
	b.WriteString(fmt.Sprintf("frequency: %s\n", data.FrequencyText))
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if len(data.Preview) > 0 {
		b.WriteString("upcoming doses:\n")
		for _, item := range data.Preview {
			b.WriteString("- " + item + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func renderCareSection(b *strings.Builder, title string, items []CareItemData, selectedID string) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		cursor := " "
		if selectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s: %s", cursor, bucketBadge(item.Bucket), item.PetName, item.Title))
		if item.Type != "" {
			b.WriteString(fmt.Sprintf(" [%s]", item.Type))
		}
		if item.DueAt != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DueAt))
		}
		if item.DueTime != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.DueTime))
		}
		b.WriteString("\n")
	}
}

func bucketBadge(bucket string) string {
	switch bucket {
	case "Overdue":
		return "[RED]"
	case "Today":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
