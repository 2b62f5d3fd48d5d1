// Package tui is a terminal view over the interaction controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/interaction"
	"todolist/internal/models"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// stateChangedMsg is sent when the controller reports a change, including
// a notification expiring on its own.
type stateChangedMsg struct{}

// Model renders the controller state and turns keys into commands.
type Model struct {
	ctrl    *interaction.Controller
	changes <-chan struct{}
	state   interaction.State
	cursor  int
	mode    mode
	input   textinput.Model
	err     error
}

// New creates a Model. changes may be nil when no subscription is wanted.
func New(ctrl *interaction.Controller, changes <-chan struct{}) Model {
	ti := textinput.New()
	ti.Placeholder = "Task"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctrl:    ctrl,
		changes: changes,
		input:   ti,
		mode:    modeList,
	}
	m.reload()
	return m
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctrl *interaction.Controller) error {
	changes, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(New(ctrl, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.reload()
		return m, m.waitForChange()
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	case tea.KeyMsg:
		if m.state.Confirmation.Awaiting {
			return m.updateConfirm(msg.String())
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg)
		}
		return m.updateListMode(msg.String())
	}
	return m, nil
}

func (m Model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch key {
	case "y", "Y":
		m.err = ignoreDomain(m.ctrl.ConfirmDelete(ctx))
	case "n", "N", "esc":
		m.ctrl.CancelDelete()
	case "ctrl+c":
		return m, tea.Quit
	}
	m.reload()
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	case "enter":
		_, err := m.ctrl.RequestAdd(context.Background(), m.input.Value())
		m.err = ignoreDomain(err)
		if err == nil {
			m.input.SetValue("")
			m.input.Blur()
			m.mode = modeList
			m.reload()
			m.cursor = clampCursor(len(m.state.Tasks)-1, len(m.state.Tasks))
			return m, nil
		}
		m.reload()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.state.Tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.state.Tasks))
	case "a":
		m.mode = modeAdd
		cmd := m.input.Focus()
		return m, cmd
	case " ", "enter":
		if task, ok := m.selected(); ok {
			_, err := m.ctrl.RequestToggle(ctx, task)
			m.err = ignoreDomain(err)
			m.reload()
		}
	case "d":
		if task, ok := m.selected(); ok {
			m.err = ignoreDomain(m.ctrl.RequestDelete(ctx, task))
			m.reload()
		}
	}
	return m, nil
}

func (m Model) selected() (string, bool) {
	if len(m.state.Tasks) == 0 {
		return "", false
	}
	return m.state.Tasks[m.cursor].ID, true
}

func (m *Model) reload() {
	state, err := m.ctrl.State(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.state = state
	m.cursor = clampCursor(m.cursor, len(state.Tasks))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n")

	if len(m.state.Tasks) == 0 {
		b.WriteString(helpStyle.Render("No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, task := range m.state.Tasks {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		check := "[ ]"
		style := taskStyle
		if task.Completed {
			check = "[x]"
			style = completedStyle
		}
		b.WriteString(prefix + check + " " + style.Render(task.Title) + "\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.state.Confirmation.Awaiting {
		b.WriteString(confirmStyle.Render(interaction.ConfirmPrompt + "  (y/n)"))
		b.WriteString("\n")
	}

	if m.state.Notification.Visible {
		b.WriteString(modalStyle.Render(m.state.Notification.Text))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch {
	case m.state.Confirmation.Awaiting:
		return "y: delete • n/esc: keep"
	case m.mode == modeAdd:
		return "enter: add • esc: cancel"
	default:
		return "a: add • space: toggle • d: delete • j/k: move • q: quit"
	}
}

// ignoreDomain drops errors the controller already reported through a
// notification or treats as a no-op.
func ignoreDomain(err error) error {
	if errors.Is(err, models.ErrEmptyTitle) || errors.Is(err, models.ErrTaskNotFound) {
		return nil
	}
	return err
}

func clampCursor(cursor, length int) int {
	if length == 0 || cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
