package update

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"petd/internal/alerts"
	"petd/internal/model"
	"petd/internal/schedule"
	"petd/internal/storage"
)

const editorPreviewDoses = 5

func (m *Model) refresh() error {
	if m.Repo == nil {
		return nil
	}
	ctx := context.Background()

	petRows, err := m.Repo.ListPets(ctx, storage.PetListFilter{})
	if err != nil {
		return fmt.Errorf("load pets: %w", err)
	}
	pets := make([]model.Pet, 0, len(petRows))
	names := make(map[string]string, len(petRows))
	for _, row := range petRows {
		pet := storage.PetToModel(row)
		pets = append(pets, pet)
		names[pet.ID] = pet.Name
	}
	sort.SliceStable(pets, func(i, j int) bool { return pets[i].Name < pets[j].Name })

	treatmentRows, err := m.Repo.ListTreatments(ctx, storage.TreatmentListFilter{})
	if err != nil {
		return fmt.Errorf("load treatments: %w", err)
	}
	treatments := make([]model.Treatment, 0, len(treatmentRows))
	for _, row := range treatmentRows {
		treatments = append(treatments, storage.TreatmentToModel(row))
	}

	taskRows, err := m.Repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(taskRows))
	byID := make(map[string]model.Task, len(taskRows))
	for _, row := range taskRows {
		task := storage.TaskToModel(row)
		tasks = append(tasks, task)
		byID[task.ID] = task
	}

	buckets := schedule.Classify(tasks, m.Clock(), m.PetFilter)
	items := make([]TodayItem, 0, len(buckets.Overdue)+len(buckets.Today)+len(buckets.Upcoming))
	appendBucket := func(bucket TodayBucket, in []model.Task) {
		for _, task := range in {
			items = append(items, TodayItem{
				ID:      task.ID,
				PetID:   task.PetID,
				PetName: names[task.PetID],
				Title:   task.Title,
				Type:    string(task.Type),
				Bucket:  bucket,
				DueAt:   task.EffectiveDueDate(),
			})
		}
	}
	appendBucket(TodayBucketOverdue, buckets.Overdue)
	appendBucket(TodayBucketToday, buckets.Today)
	appendBucket(TodayBucketUpcoming, buckets.Upcoming)

	m.Pets.Items = pets
	m.Treatments.Items = treatments
	m.Today.Items = items
	m.tasks = byID
	m.petNames = names
	m.clampCursors()
	m.syncSelectedTaskToTodayCursor()
	return nil
}

func (m *Model) clampCursors() {
	if m.Today.Cursor >= len(m.Today.Items) {
		m.Today.Cursor = len(m.Today.Items) - 1
	}
	if m.Today.Cursor < 0 {
		m.Today.Cursor = 0
	}
	if m.Pets.Cursor >= len(m.Pets.Items) {
		m.Pets.Cursor = len(m.Pets.Items) - 1
	}
	if m.Pets.Cursor < 0 {
		m.Pets.Cursor = 0
	}
	if m.Treatments.Cursor >= len(m.Treatments.Items) {
		m.Treatments.Cursor = len(m.Treatments.Items) - 1
	}
	if m.Treatments.Cursor < 0 {
		m.Treatments.Cursor = 0
	}
}

func (m *Model) completeTask(id string) error {
	task, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("unknown task: %s", id)
	}
	next, receipt, err := schedule.Complete(task, m.Clock())
	if err != nil {
		return err
	}
	if err := m.Repo.UpdateTask(context.Background(), storage.TaskFromModel(next)); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	m.undoStack = append(m.undoStack, undoEntry{TaskID: id, Receipt: receipt})
	if m.Alerts != nil && !next.IsComplete {
		_ = m.Alerts.Schedule(alerts.TaskAlert{
			TaskID: next.ID,
			PetID:  next.PetID,
			Title:  next.Title,
			DueAt:  next.EffectiveDueDate(),
		})
	}
	return m.refresh()
}

func (m *Model) completeByPrefix(target string) (string, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return "", errors.New("done requires a task id or prefix")
	}
	matches := make([]string, 0, 1)
	for id := range m.tasks {
		if strings.HasPrefix(strings.ToLower(id), target) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches %q", target)
	case 1:
		return matches[0], m.completeTask(matches[0])
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("ambiguous prefix %q matches %d tasks", target, len(matches))
	}
}

func (m *Model) undoLast() (string, error) {
	if len(m.undoStack) == 0 {
		return "", errors.New("nothing to undo")
	}
	entry := m.undoStack[len(m.undoStack)-1]
	row, err := m.Repo.GetTask(context.Background(), entry.TaskID)
	if err != nil {
		return "", fmt.Errorf("load task for undo: %w", err)
	}
	restored, err := entry.Receipt.Revert(storage.TaskToModel(row))
	if err != nil {
		return "", err
	}
	if err := m.Repo.UpdateTask(context.Background(), storage.TaskFromModel(restored)); err != nil {
		return "", fmt.Errorf("save task: %w", err)
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return entry.TaskID, m.refresh()
}

func (m *Model) addQuickTask(petName, title string) (model.Task, error) {
	petID, ok := m.findPetIDByName(petName)
	if !ok {
		return model.Task{}, fmt.Errorf("no pet named %q", petName)
	}
	now := m.Clock()
	task := model.Task{
		ID:          uuid.NewString(),
		PetID:       petID,
		Title:       strings.TrimSpace(title),
		Type:        model.TaskTypeOther,
		DueDate:     now,
		NextDueDate: now,
		CreatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := m.Repo.CreateTask(context.Background(), storage.TaskFromModel(task)); err != nil {
		return model.Task{}, fmt.Errorf("save task: %w", err)
	}
	return task, m.refresh()
}

func (m *Model) saveTreatment() error {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return errors.New("treatment name is required")
	}
	if m.Editor.PetID == "" {
		return errors.New("no pet selected for treatment")
	}
	ctx := context.Background()
	now := m.Clock()

	var tr model.Treatment
	if m.Editor.TreatmentID == "" {
		tr = model.Treatment{
			ID:        uuid.NewString(),
			PetID:     m.Editor.PetID,
			StartDate: startOfDay(now),
			CreatedAt: now,
		}
	} else {
		row, err := m.Repo.GetTreatment(ctx, m.Editor.TreatmentID)
		if err != nil {
			return fmt.Errorf("load treatment: %w", err)
		}
		tr = storage.TreatmentToModel(row)
	}
	tr.Name = name
	tr.Dosage = strings.TrimSpace(m.dosageInput.Value())
	tr.Frequency = strings.TrimSpace(m.freqInput.Value())
	if err := tr.Validate(); err != nil {
		return err
	}

	if m.Editor.TreatmentID == "" {
		if err := m.Repo.CreateTreatment(ctx, storage.TreatmentFromModel(tr)); err != nil {
			return fmt.Errorf("save treatment: %w", err)
		}
	} else {
		if err := m.Repo.UpdateTreatment(ctx, storage.TreatmentFromModel(tr)); err != nil {
			return fmt.Errorf("save treatment: %w", err)
		}
	}

	rule := schedule.ParseFrequency(tr.Frequency)
	batch := schedule.Generate(tr, rule, m.Horizon)
	rows := make([]storage.Task, 0, len(batch))
	for _, task := range batch {
		task.ID = uuid.NewString()
		task.CreatedAt = now
		rows = append(rows, storage.TaskFromModel(task))
	}
	if err := m.Repo.ReplaceTreatmentTasks(ctx, tr.ID, rows); err != nil {
		return fmt.Errorf("regenerate tasks: %w", err)
	}
	return m.refresh()
}

func (m *Model) deleteSelectedTreatment() error {
	tr, ok := m.currentTreatment()
	if !ok {
		return errors.New("no treatment selected")
	}
	if err := m.Repo.DeleteTreatment(context.Background(), tr.ID); err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	return m.refresh()
}

// refreshDosePreview recomputes the editor's upcoming-dose list from the
// frequency text as typed. The preview mirrors what saving would generate.
func (m *Model) refreshDosePreview() {
	m.Editor.Preview = nil
	freq := strings.TrimSpace(m.freqInput.Value())
	if freq == "" {
		return
	}
	tr := model.Treatment{
		ID:        "preview",
		PetID:     m.Editor.PetID,
		Name:      strings.TrimSpace(m.nameInput.Value()),
		Dosage:    strings.TrimSpace(m.dosageInput.Value()),
		Frequency: freq,
		StartDate: startOfDay(m.Clock()),
	}
	rule := schedule.ParseFrequency(freq)
	batch := schedule.Generate(tr, rule, m.Horizon)
	for i, task := range batch {
		if i >= editorPreviewDoses {
			break
		}
		m.Editor.Preview = append(m.Editor.Preview, task.NextDueDate.Format("2006-01-02 Mon 15:04"))
	}
}

// armAlerts queues an alert for every pending task still due later today.
// Called once at startup; completions arm their own follow-up alerts.
func (m *Model) armAlerts() {
	if m.Alerts == nil {
		return
	}
	now := m.Clock()
	dayEnd := startOfDay(now).Add(24 * time.Hour)
	for _, task := range m.tasks {
		if task.IsComplete {
			continue
		}
		due := task.EffectiveDueDate()
		if due.After(now) && due.Before(dayEnd) {
			_ = m.Alerts.Schedule(alerts.TaskAlert{
				TaskID: task.ID,
				PetID:  task.PetID,
				Title:  task.Title,
				DueAt:  due,
			})
		}
	}
}

func (m Model) findPetIDByName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, pet := range m.Pets.Items {
		if strings.EqualFold(pet.Name, name) {
			return pet.ID, true
		}
	}
	return "", false
}

func (m Model) petName(id string) string {
	if name, ok := m.petNames[id]; ok {
		return name
	}
	return id
}

func resolveDefaultPetFilter(repo storage.Repository, name string) string {
	if repo == nil || strings.TrimSpace(name) == "" {
		return schedule.PetFilterAll
	}
	rows, err := repo.ListPets(context.Background(), storage.PetListFilter{})
	if err != nil {
		return schedule.PetFilterAll
	}
	for _, row := range rows {
		if strings.EqualFold(row.Name, name) {
			return row.ID
		}
	}
	return schedule.PetFilterAll
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
