package ui

import (
	"strings"

	"github.com/shikhar1146-netizen/Projects/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if strings.TrimSpace(customKeys) == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			// Bubble Tea reports the space bar as " ".
			trimmed = " "
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// KeyMap defines the list view bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Remove key.Binding
	Done   key.Binding
	Search key.Binding
	Sort   key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(&config.KeysConfig{})
}

// NewKeyMap creates key bindings from config.
func NewKeyMap(cfg *config.KeysConfig) KeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp(helpKey(cfg.Add, "a"), "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Remove, "x", "delete")...),
			key.WithHelp(helpKey(cfg.Remove, "x"), "remove"),
		),
		Done: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Done, "d", " ")...),
			key.WithHelp(helpKey(cfg.Done, "d"), "done"),
		),
		Search: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Search, "/")...),
			key.WithHelp(helpKey(cfg.Search, "/"), "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Sort, "s")...),
			key.WithHelp(helpKey(cfg.Sort, "s"), "sort by deadline"),
		),
		Save: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Save, "w")...),
			key.WithHelp(helpKey(cfg.Save, "w"), "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp(helpKey(cfg.Quit, "q"), "quit"),
		),
	}
}

// helpKey is the first configured key, as shown in the help bar.
func helpKey(custom, def string) string {
	k := parseKeys(custom, def)[0]
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Done, k.Remove, k.Search, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Done, k.Remove},
		{k.Search, k.Sort, k.Save},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// InputKeyMap defines keys for the prompts.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the prompt key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
