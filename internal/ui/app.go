// Package ui is the interactive to-do menu: a Bubble Tea program over a
// storage.TaskStore, plus the plain list format shared with the CLI.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/config"
	"github.com/shikhar1146-netizen/Projects/internal/storage"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

type mode int

const (
	modeList mode = iota
	modeAddTitle
	modeAddPriority
	modeAddDeadline
	modeSearchInput
	modeSearchResults
)

var prompts = map[mode]string{
	modeAddTitle:    "Task title: ",
	modeAddPriority: "Priority (low/medium/high): ",
	modeAddDeadline: "Deadline (YYYY-MM-DD or leave blank): ",
	modeSearchInput: "Search keyword: ",
}

// Model is the menu state. Store calls happen synchronously inside Update,
// so the model is the only writer while the program runs.
type Model struct {
	store     *storage.TaskStore
	styles    *Styles
	keys      KeyMap
	inputKeys InputKeyMap
	help      help.Model
	input     textinput.Model

	mode   mode
	cursor int
	width  int
	height int

	// pending add
	title    string
	priority storage.Priority

	query   string
	matches []storage.Task

	status    string
	statusErr bool
	dirty     bool

	today func() storage.Date
	err   error
}

// New creates the menu for store.
func New(store *storage.TaskStore, styles *Styles, keys *config.KeysConfig) *Model {
	if styles == nil {
		styles = NewStyles(nil)
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return &Model{
		store:     store,
		styles:    styles,
		keys:      NewKeyMap(keys),
		inputKeys: DefaultInputKeyMap(),
		help:      newHelp(styles),
		input:     ti,
		today:     func() storage.Date { return storage.DateOf(time.Now()) },
	}
}

// Run starts the menu and blocks until the user quits. A save or load failure
// ends the program and is returned.
func Run(store *storage.TaskStore, cfg *config.Config, opts ...tea.ProgramOption) error {
	m := New(store, NewStyles(&cfg.Theme), &cfg.Keys)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return m.Err()
}

// Err returns the persistence error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-len(prompts[modeAddDeadline])-2)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeList:
			return m, m.updateList(msg)
		case modeSearchResults:
			if key.Matches(msg, m.inputKeys.Cancel) || key.Matches(msg, m.keys.Quit) {
				m.mode = modeList
				m.matches = nil
			}
			return m, nil
		default:
			return m, m.updateInput(msg)
		}
	}

	if m.mode != modeList && m.mode != modeSearchResults {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	n := m.store.Len()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.cursor = min(m.cursor+1, n-1)
		}
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Add):
		m.title, m.priority = "", ""
		return m.prompt(modeAddTitle)

	case key.Matches(msg, m.keys.Remove):
		if n == 0 {
			return nil
		}
		t, _ := m.store.Task(m.cursor)
		if cmd := m.check(m.store.Remove(m.cursor)); cmd != nil {
			return cmd
		}
		m.dirty = false
		m.cursor = min(m.cursor, max(m.store.Len()-1, 0))
		m.setStatus(fmt.Sprintf("Removed %q.", t.Title))

	case key.Matches(msg, m.keys.Done):
		if n == 0 {
			return nil
		}
		if cmd := m.check(m.store.MarkDone(m.cursor)); cmd != nil {
			return cmd
		}
		m.dirty = false
		t, _ := m.store.Task(m.cursor)
		m.setStatus(fmt.Sprintf("Marked %q as done.", t.Title))

	case key.Matches(msg, m.keys.Search):
		return m.prompt(modeSearchInput)

	case key.Matches(msg, m.keys.Sort):
		m.store.SortByDeadline()
		m.dirty = true
		m.setStatus("Tasks sorted by deadline (not saved yet).")

	case key.Matches(msg, m.keys.Save):
		if cmd := m.check(m.store.Save()); cmd != nil {
			return cmd
		}
		m.dirty = false
		m.setStatus(fmt.Sprintf("Saved %d tasks.", m.store.Len()))

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.leaveInput()
		return nil
	case key.Matches(msg, m.inputKeys.Confirm):
		return m.confirm(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// confirm advances the add or search flow with the submitted value.
func (m *Model) confirm(value string) tea.Cmd {
	switch m.mode {
	case modeAddTitle:
		if strings.TrimSpace(value) == "" {
			m.leaveInput()
			return nil
		}
		m.title = value
		return m.prompt(modeAddPriority)

	case modeAddPriority:
		m.priority = storage.NormalizePriority(value)
		return m.prompt(modeAddDeadline)

	case modeAddDeadline:
		deadline, err := storage.ParseOptionalDate(value)
		if err != nil {
			m.input.Reset()
			m.setError(err.Error())
			return nil
		}
		m.leaveInput()
		m.setStatus("")
		if cmd := m.check(m.store.Add(m.title, m.priority, deadline)); cmd != nil {
			return cmd
		}
		if m.statusErr {
			return nil
		}
		m.dirty = false
		m.cursor = m.store.Len() - 1
		m.setStatus("Task added.")

	case modeSearchInput:
		m.leaveInput()
		m.query = value
		m.matches = m.store.Search(value)
		m.mode = modeSearchResults
	}
	return nil
}

func (m *Model) prompt(next mode) tea.Cmd {
	m.mode = next
	m.input.Reset()
	m.input.Prompt = m.styles.InputPromptStyle.Render(prompts[next])
	m.status = ""
	return m.input.Focus()
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.input.Reset()
	m.input.Blur()
}

// check handles a store error. Rejected input is shown and the menu carries
// on; anything else means memory and file may disagree, so the program stops.
func (m *Model) check(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	var ve *storage.ValidationError
	if errors.As(err, &ve) {
		m.setError(ve.Error())
		return nil
	}
	m.err = err
	return tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render("TO-DO LIST"))
	if m.dirty {
		b.WriteString(" " + m.styles.StatLabelStyle.Render("(unsaved order)"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.SeparatorStyle.Render(strings.Repeat("─", m.lineWidth())))
	b.WriteString("\n")

	if m.mode == modeSearchResults {
		m.viewSearch(&b)
	} else {
		m.viewList(&b)
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAddTitle, modeAddPriority, modeAddDeadline, modeSearchInput:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(m.styles.StatusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewList(b *strings.Builder) {
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.EmptyStyle.Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
		return
	}

	today := m.today()
	done := 0
	for i, t := range tasks {
		if t.Completed {
			done++
		}
		b.WriteString(m.renderTask(i, t, today, i == m.cursor && m.mode == modeList))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + m.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d done", done, len(tasks))))
	b.WriteString("\n")
}

func (m *Model) renderTask(index int, t storage.Task, today storage.Date, selected bool) string {
	checkbox := m.styles.TaskCheckboxPending
	if t.Completed {
		checkbox = m.styles.TaskCheckboxDone
	}

	due := ""
	if t.Deadline != nil {
		due = m.styles.Due(*t.Deadline, today).Render("⏰ " + t.Deadline.String())
	}
	prio := m.styles.Priority(t.Priority).Render(string(t.Priority))

	// index, checkbox, priority and deadline take about 30 columns.
	titleWidth := max(10, m.lineWidth()-30)
	title := runewidth.Truncate(t.Title, titleWidth, "..")
	title = runewidth.FillRight(title, titleWidth)

	if selected {
		title = m.styles.TaskSelectedStyle.Render(title)
	} else if t.Completed {
		title = m.styles.TaskDoneStyle.Render(title)
	} else {
		title = m.styles.TaskPendingStyle.Render(title)
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%d. %s %s %s", cursor, index, checkbox, title, prio)
	if due != "" {
		line += "  " + due
	}
	return line
}

func (m *Model) viewSearch(b *strings.Builder) {
	fmt.Fprintf(b, "Results for %q:\n", m.query)
	if len(m.matches) == 0 {
		b.WriteString(m.styles.EmptyStyle.Render("  No matches found."))
		b.WriteString("\n")
	}
	for _, t := range m.matches {
		line := "- " + runewidth.Truncate(t.Title, max(10, m.lineWidth()-20), "..")
		fmt.Fprintf(b, "%s (Priority: %s)\n", line, m.styles.Priority(t.Priority).Render(string(t.Priority)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabelStyle.Render("esc back"))
	b.WriteString("\n")
}

func (m *Model) lineWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(20, m.width-2)
}
