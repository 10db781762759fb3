package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/atmention/editor"
	"github.com/iw2rmb/atmention/internal/logging"
	"github.com/iw2rmb/atmention/mention"
)

const statusHeight = 2

// status is shared with the editor callbacks, which fire during Update.
type status struct {
	events     int
	last       editor.ChangeEvent
	candidates int
}

func (s *status) handleChange(ev editor.ChangeEvent) {
	s.events++
	s.last = ev
}

func (s *status) handleCandidates(items []mention.Mentionable) {
	s.candidates = len(items)
}

type app struct {
	editor editor.Model
	status *status
	log    *logging.Logger

	width int
	// done is set when the user submits; the program prints the export.
	done bool

	statusStyle lipgloss.Style
	errStyle    lipgloss.Style
}

func newApp(s settings, es engineSettings, pool []mention.Entity, log *logging.Logger, cb editor.Clipboard) app {
	st := &status{}
	cfg := editor.Config{
		Text:                     s.Text,
		Sentinel:                 es.Sentinel,
		Trigger:                  es.Trigger,
		CommitPolicy:             es.Policy,
		Style:                    editor.DefaultStyle(),
		SuggestionMaxVisibleRows: s.Suggestions.MaxRows,
		SuggestionMaxWidth:       s.Suggestions.MaxWidth,
		ReadOnly:                 s.ReadOnly,
		Clipboard:                cb,
		OnChange:                 st.handleChange,
		OnCandidates:             st.handleCandidates,
		Logger:                   log.Logger,
	}
	m := editor.New(cfg).SetPool(mention.Pool(pool...))
	st.last.Text = m.Text()
	st.last.Export, st.last.ExportErr = m.Export()

	return app{
		editor:      m,
		status:      st,
		log:         log,
		statusStyle: lipgloss.NewStyle().Faint(true),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.editor = a.editor.SetSize(msg.Width, maxInt(msg.Height-statusHeight, 0))
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+d":
			a.done = true
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a app) View() string {
	return a.editor.View() + "\n" + a.statusView()
}

func (a app) statusView() string {
	last := a.status.last
	line1 := fmt.Sprintf("mentions: %d  suggestions: %d  cursor: %d:%d  ctrl+d submit  ctrl+c quit",
		len(last.Mentions), a.status.candidates, last.Pos.Row, last.Pos.Col)

	var line2 string
	if last.ExportErr != nil {
		line2 = a.errStyle.Render("export: " + last.ExportErr.Error())
	} else {
		line2 = a.statusStyle.Render("export: " + sanitizeExport(last.Export))
	}
	if warn, errs := a.log.Counts(); warn+errs > 0 {
		line1 += fmt.Sprintf("  log: %d warn %d err", warn, errs)
	}

	line1 = a.statusStyle.Render(line1)
	if a.width > 0 {
		line1 = ansi.Truncate(line1, a.width, "…")
		line2 = ansi.Truncate(line2, a.width, "…")
	}
	return line1 + "\n" + line2
}

// Export is the submitted text, valid once done is set.
func (a app) Export() (string, error) { return a.editor.Export() }

func sanitizeExport(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '\n' || r == '\t' {
			out[i] = ' '
		}
	}
	return string(out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
