// Package tui renders the employee dashboard in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-empedge/internal/dashboard"
	"go-empedge/internal/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

type loadedMsg struct{ err error }

type submittedMsg struct {
	res dashboard.SubmitResult
	err error
}

type deletedMsg struct{ err error }

type Model struct {
	ctx    context.Context
	ctrl   *dashboard.Controller
	styles Styles

	mode   mode
	cursor int
	search textinput.Model
	inputs []textinput.Model
	focus  int
	status string

	deleting bool
}

func New(ctx context.Context, ctrl *dashboard.Controller) Model {
	search := textinput.New()
	search.Placeholder = "Search by name or position"
	search.Prompt = "/ "

	inputs := make([]textinput.Model, len(validation.Fields))
	for i, field := range validation.Fields {
		in := textinput.New()
		in.Placeholder = field
		in.Prompt = ""
		in.CharLimit = 255
		inputs[i] = in
	}

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		styles: DefaultStyles(),
		search: search,
		inputs: inputs,
	}
}

func (m Model) Init() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Refresh(ctx)}
	}
}

func (m Model) submit() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		res, err := ctrl.Submit(ctx)
		return submittedMsg{res: res, err: err}
	}
}

func (m Model) confirmDelete() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return deletedMsg{err: ctrl.ConfirmDelete(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.status = "Error fetching employees: " + errorText(msg.err)
		}
		m.clampCursor()
		return m, nil

	case submittedMsg:
		switch {
		case errors.Is(msg.err, dashboard.ErrSubmitInFlight):
			return m, nil
		case errors.Is(msg.err, dashboard.ErrInvalidForm):
			m.status = "Please fix the highlighted fields"
		case msg.err != nil:
			m.status = "Error saving employee: " + errorText(msg.err)
		default:
			m.mode = modeList
			m.status = "Employee updated"
			if msg.res.Created {
				m.status = "Employee added"
			}
			if !msg.res.Reconciled {
				m.status += " (press r to refresh)"
			}
		}
		m.clampCursor()
		return m, nil

	case deletedMsg:
		if errors.Is(msg.err, dashboard.ErrDeleteInFlight) {
			return m, nil
		}
		m.deleting = false
		if msg.err != nil {
			m.status = "Error deleting employee: " + errorText(msg.err)
			return m, nil
		}
		m.mode = modeList
		m.status = "Employee deleted"
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.Filtered())-1 {
			m.cursor++
		}
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "r":
		m.status = ""
		return m, m.refresh()
	case "a":
		m.ctrl.OpenAdd()
		cmd := m.openForm()
		return m, cmd
	case "e":
		if emp, ok := m.selected(); ok {
			m.ctrl.OpenEdit(emp)
			cmd := m.openForm()
			return m, cmd
		}
	case "d":
		if emp, ok := m.selected(); ok {
			m.ctrl.OpenDelete(emp)
			m.mode = modeConfirm
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.SetSearch("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) openForm() tea.Cmd {
	m.mode = modeForm
	m.status = ""
	draft := m.ctrl.Snapshot().Draft
	for i, field := range validation.Fields {
		m.inputs[i].SetValue(draft.Get(field))
		m.inputs[i].CursorEnd()
		m.inputs[i].Blur()
	}
	m.focus = 0
	return m.inputs[0].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelModal()
		m.mode = modeList
		m.status = ""
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		m.inputs[m.focus].Blur()
		if msg.Type == tea.KeyTab {
			m.focus = (m.focus + 1) % len(m.inputs)
		} else {
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		}
		cmd := m.inputs[m.focus].Focus()
		return m, cmd
	case tea.KeyEnter:
		if m.ctrl.Snapshot().Submitting {
			return m, nil
		}
		m.status = "Saving..."
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.ctrl.SetField(validation.Fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.deleting {
			return m, nil
		}
		m.deleting = true
		m.status = "Deleting..."
		return m, m.confirmDelete()
	case "n", "N", "esc":
		if m.deleting {
			return m, nil
		}
		m.ctrl.CancelDelete()
		m.mode = modeList
		m.status = ""
	}
	return m, nil
}

func (m Model) selected() (dashboard.Employee, bool) {
	list := m.ctrl.Filtered()
	if m.cursor < 0 || m.cursor >= len(list) {
		return dashboard.Employee{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Filtered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	state := m.ctrl.Snapshot()
	list := dashboard.Filter(state.Employees, state.Search)

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Employees (%d)", len(state.Employees))))
	b.WriteString("\n")

	if m.mode == modeSearch || state.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(m.styles.Muted.Render("No employees found"))
		b.WriteString("\n")
	}
	for i, emp := range list {
		row := strings.Join([]string{
			cell(emp.Name, 24), cell(emp.Email, 28), cell(emp.Position, 20), emp.Contact,
		}, " ")
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	switch m.mode {
	case modeForm:
		b.WriteString("\n")
		b.WriteString(m.formView(state))
		b.WriteString("\n")
	case modeConfirm:
		if state.PendingDelete != nil {
			b.WriteString("\n")
			b.WriteString(m.styles.Modal.Render(fmt.Sprintf(
				"Delete %s? This action cannot be undone.\n\n[y] delete  [n] cancel",
				state.PendingDelete.Name)))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.help()))
	return b.String()
}

func (m Model) formView(state dashboard.State) string {
	title := "Add Employee"
	if state.Editing != nil {
		title = "Edit Employee"
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n")
	for i, field := range validation.Fields {
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render(strings.ToUpper(field[:1]) + field[1:]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		if msg, ok := state.Errors[field]; ok {
			b.WriteString("\n")
			b.WriteString(m.styles.Error.Render(msg))
		}
		b.WriteString("\n")
	}
	return m.styles.Modal.Render(b.String())
}

func (m Model) help() string {
	switch m.mode {
	case modeSearch:
		return "enter: keep filter • esc: clear"
	case modeForm:
		return "tab/shift+tab: move • enter: save • esc: cancel"
	case modeConfirm:
		return "y: delete • n: cancel"
	default:
		return "↑/↓: move • /: search • a: add • e: edit • d: delete • r: refresh • q: quit"
	}
}

func errorText(err error) string {
	var apiErr *dashboard.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// cell pads or truncates s to exactly width terminal columns.
func cell(s string, width int) string {
	s = truncate(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// truncate cuts s on a rune boundary so it fits in width columns, ellipsis
// included.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-3 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
