package ui

import (
	"github.com/shikhar1146-netizen/Projects/internal/config"
	"github.com/shikhar1146-netizen/Projects/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBgLight   lipgloss.Color

	TitleStyle     lipgloss.Style
	SeparatorStyle lipgloss.Style
	EmptyStyle     lipgloss.Style

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style

	DueDateOverdueStyle lipgloss.Style
	DueDateTodayStyle   lipgloss.Style
	DueDateFutureStyle  lipgloss.Style

	StatusStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
	InputPromptStyle lipgloss.Style
	StatLabelStyle   lipgloss.Style
}

// NewStyles creates styles from the configured theme. Empty theme colors fall
// back to the defaults.
func NewStyles(theme *config.ThemeConfig) *Styles {
	if theme == nil {
		theme = &config.ThemeConfig{}
	}
	s := &Styles{
		ColorPrimary:   colorOrDefault(theme.Primary, "#7C3AED"),
		ColorAccent:    colorOrDefault(theme.Accent, "#10B981"),
		ColorMuted:     colorOrDefault(theme.Muted, "#6B7280"),
		ColorDanger:    lipgloss.Color("#EF4444"),
		ColorWarning:   lipgloss.Color("#F59E0B"),
		ColorSuccess:   lipgloss.Color("#10B981"),
		ColorText:      lipgloss.Color("#F9FAFB"),
		ColorTextMuted: lipgloss.Color("#9CA3AF"),
		ColorBgLight:   lipgloss.Color("#374151"),
	}
	s.initComponentStyles()
	return s
}

func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.SeparatorStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.EmptyStyle = lipgloss.NewStyle().Foreground(s.ColorTextMuted).Italic(true)

	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)
	s.TaskPendingStyle = lipgloss.NewStyle().Foreground(s.ColorText)
	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.PriorityHighStyle = lipgloss.NewStyle().Foreground(s.ColorDanger).Bold(true)
	s.PriorityMediumStyle = lipgloss.NewStyle().Foreground(s.ColorWarning)
	s.PriorityLowStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.DueDateOverdueStyle = lipgloss.NewStyle().Foreground(s.ColorDanger).Bold(true)
	s.DueDateTodayStyle = lipgloss.NewStyle().Foreground(s.ColorWarning)
	s.DueDateFutureStyle = lipgloss.NewStyle().Foreground(s.ColorTextMuted)

	s.StatusStyle = lipgloss.NewStyle().Foreground(s.ColorAccent).Italic(true)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.ColorDanger).Bold(true)
	s.InputPromptStyle = lipgloss.NewStyle().Foreground(s.ColorPrimary).Bold(true)
	s.StatLabelStyle = lipgloss.NewStyle().Foreground(s.ColorTextMuted)
}

// Priority returns the badge style for p. Priorities outside low/medium/high
// render like low.
func (s *Styles) Priority(p storage.Priority) lipgloss.Style {
	switch p {
	case storage.PriorityHigh:
		return s.PriorityHighStyle
	case storage.PriorityMedium:
		return s.PriorityMediumStyle
	default:
		return s.PriorityLowStyle
	}
}

// Due returns the style for a deadline relative to today.
func (s *Styles) Due(deadline, today storage.Date) lipgloss.Style {
	switch days := today.DaysUntil(deadline); {
	case days < 0:
		return s.DueDateOverdueStyle
	case days == 0:
		return s.DueDateTodayStyle
	default:
		return s.DueDateFutureStyle
	}
}
