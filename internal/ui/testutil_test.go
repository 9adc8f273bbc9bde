package ui

import (
	"path/filepath"
	"testing"

	"github.com/shikhar1146-netizen/Projects/internal/config"
	"github.com/shikhar1146-netizen/Projects/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest disables colors so rendered output can be matched as text.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore opens a store in a temp dir holding the given titles, all
// medium priority with no deadline.
func createTestStore(t *testing.T, titles ...string) *storage.TaskStore {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), storage.DefaultFile))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	for _, title := range titles {
		if err := store.Add(title, storage.PriorityMedium, nil); err != nil {
			t.Fatalf("failed to add %q: %v", title, err)
		}
	}
	return store
}

func createTestModel(t *testing.T, store *storage.TaskStore) *Model {
	t.Helper()
	setupTest(t)
	m := New(store, NewStyles(&config.ThemeConfig{}), &config.KeysConfig{})
	m.today = func() storage.Date { return storage.Date{Year: 2025, Month: 3, Day: 1} }
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// press sends each key to m and returns the command from the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

// typeText enters s into the focused prompt and confirms it.
func typeText(m *Model, s string) tea.Cmd {
	if s != "" {
		press(m, s)
	}
	return press(m, "enter")
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
