package editor

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

// Style controls the editor's rendering.
type Style struct {
	Text    lipgloss.Style
	Mention lipgloss.Style
	Cursor  lipgloss.Style

	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style
	SuggestionDetail   lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:               lipgloss.NewStyle(),
		Mention:            lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Cursor:             lipgloss.NewStyle().Reverse(true),
		Suggestion:         lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		SuggestionSelected: lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")).Bold(true),
		SuggestionDetail:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func normalizeStyle(st Style) Style {
	if reflect.DeepEqual(st, Style{}) {
		return DefaultStyle()
	}
	if reflect.DeepEqual(st.Mention, lipgloss.Style{}) {
		st.Mention = lipgloss.NewStyle().Bold(true)
	}
	if reflect.DeepEqual(st.Cursor, lipgloss.Style{}) {
		st.Cursor = lipgloss.NewStyle().Reverse(true)
	}
	return st
}
