package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelp returns a help bar themed with s.
func newHelp(s *Styles) help.Model {
	h := help.New()
	keyStyle := lipgloss.NewStyle().Foreground(s.ColorAccent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(s.ColorTextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(s.ColorMuted)

	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = sepStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = sepStyle
	h.Styles.Ellipsis = sepStyle
	return h
}
