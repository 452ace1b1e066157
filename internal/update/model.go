package update

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"petd/internal/alerts"
	"petd/internal/config"
	"petd/internal/model"
	"petd/internal/schedule"
	"petd/internal/storage"
)

type View string

const (
	ViewToday      View = "Today"
	ViewPets       View = "Pets"
	ViewTreatments View = "Treatments"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today      string
	Pets       string
	Treatments string
	Help       string
	Quit       string
}

type TodayBucket string

const (
	TodayBucketOverdue  TodayBucket = "Overdue"
	TodayBucketToday    TodayBucket = "Today"
	TodayBucketUpcoming TodayBucket = "Upcoming"
)

type TodayItem struct {
	ID      string
	PetID   string
	PetName string
	Title   string
	Type    string
	Bucket  TodayBucket
	DueAt   time.Time
}

type TodayState struct {
	Items  []TodayItem
	Cursor int
}

type PetsState struct {
	Items  []model.Pet
	Cursor int
}

type TreatmentsState struct {
	Items  []model.Treatment
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type TreatmentEditorState struct {
	Active      bool
	TreatmentID string
	PetID       string
	Field       int
	Preview     []string
	Err         string
}

const (
	editorFieldName = iota
	editorFieldDosage
	editorFieldFrequency
	editorFieldCount
)

type undoEntry struct {
	TaskID  string
	Receipt schedule.Undo
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	PetFilter      string
	Today          TodayState
	Pets           PetsState
	Treatments     TreatmentsState
	Palette        CommandPaletteState
	Editor         TreatmentEditorState
	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Quitting       bool
	LastError      error
	AlertLog       []alerts.TaskAlert

	Repo    storage.Repository
	Alerts  *alerts.Engine
	Clock   func() time.Time
	Horizon int

	tasks     map[string]model.Task
	petNames  map[string]string
	undoStack []undoEntry

	commandInput textinput.Model
	nameInput    textinput.Model
	dosageInput  textinput.Model
	freqInput    textinput.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type RefreshMsg struct{}

type AlertDueMsg struct {
	Alert alerts.TaskAlert
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewToday,
		Clock:       time.Now,
		Horizon:     schedule.DefaultHorizonMonths,
		tasks:       make(map[string]model.Task),
		petNames:    make(map[string]string),
		Keys: GlobalKeyMap{
			Today:      "1",
			Pets:       "2",
			Treatments: "3",
			Help:       "?",
			Quit:       "q",
		},
	}
	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add <pet> <title> | done <id> | undo | show <subject>"
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "treatment name"
	m.dosageInput = textinput.New()
	m.dosageInput.Placeholder = "dosage"
	m.freqInput = textinput.New()
	m.freqInput.Placeholder = "frequency, e.g. twice daily"
	return m
}

func NewApp(repo storage.Repository, engine *alerts.Engine, cfg config.Config) Model {
	m := NewModel()
	m.Repo = repo
	m.Alerts = engine
	if cfg.HorizonMonths > 0 {
		m.Horizon = cfg.HorizonMonths
	}
	m.PetFilter = resolveDefaultPetFilter(repo, cfg.DefaultPet)
	if err := m.refresh(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	m.armAlerts()
	return m
}
