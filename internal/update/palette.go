package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"petd/internal/commands"
	"petd/internal/schedule"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.addQuickTask(a.Pet, a.Title)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("added task for %s: %s", a.Pet, task.Title)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			id, err := m.completeByPrefix(d.Target)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("completed task %s", id)}, nil
		},
		Undo: func() (commands.Result, error) {
			id, err := m.undoLast()
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("restored task %s", id)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.Pet != "" {
				id, ok := m.findPetIDByName(s.Pet)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no pet named %q", s.Pet)}
				}
				m.PetFilter = id
			} else {
				m.PetFilter = schedule.PetFilterAll
			}
			switch s.Subject {
			case "pets":
				m.CurrentView = ViewPets
			case "treatments":
				m.CurrentView = ViewTreatments
			default:
				m.CurrentView = ViewToday
			}
			if err := m.refresh(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
