package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"petd/internal/alerts"
	"petd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Alerts != nil {
		return waitForAlertCmd(m.Alerts.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			return next, nil
		}
		if m.Editor.Active {
			next := m.handleEditorKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.Pets:
			m.CurrentView = ViewPets
			return m, nil
		case m.Keys.Treatments:
			m.CurrentView = ViewTreatments
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "r":
			if err := m.refresh(); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: "refreshed", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewPets:
			return m.handlePetsKey(typed), nil
		case ViewTreatments:
			return m.handleTreatmentsKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case RefreshMsg:
		if err := m.refresh(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, nil
	case AlertDueMsg:
		m.AlertLog = append(m.AlertLog, typed.Alert)
		if len(m.AlertLog) > 20 {
			m.AlertLog = m.AlertLog[len(m.AlertLog)-20:]
		}
		m.Status = StatusBar{
			Text:    fmt.Sprintf("due now: %s (%s)", typed.Alert.Title, m.petName(typed.Alert.PetID)),
			IsError: false,
		}
		if m.Alerts != nil {
			return m, waitForAlertCmd(m.Alerts.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewPets:
		leftPane = m.renderPetsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTreatments:
		leftPane = m.renderTreatmentsView()
		rightPane = m.renderTreatmentEditorIfVisible() + m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.AlertLog) > 0 {
		last := m.AlertLog[len(m.AlertLog)-1]
		notificationView = views.RenderNotification("alert", fmt.Sprintf("%s due %s", last.Title, last.DueAt.Format("15:04:05")))
	}

	filterLabel := "all pets"
	if m.PetFilter != "" {
		filterLabel = m.petName(m.PetFilter)
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("petd | view: %s | filter: %s", m.CurrentView, filterLabel),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: strings.TrimSpace(notificationView),
		Footer:       fmt.Sprintf("keys: %s today | %s pets | %s treatments | / cmd | %s help | %s quit", m.Keys.Today, m.Keys.Pets, m.Keys.Treatments, m.Keys.Help, m.Keys.Quit),
	})
}

func waitForAlertCmd(ch <-chan alerts.TaskAlert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: alert}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewPets, ViewTreatments:
		return true
	default:
		return false
	}
}
