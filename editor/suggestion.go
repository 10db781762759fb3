package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/atmention/mention"
)

const (
	defaultSuggestionMaxVisibleRows = 6
	defaultSuggestionMaxWidth       = 48
)

// SuggestionState is the suggestion popup shown while a mention candidate has
// matches.
type SuggestionState struct {
	Visible bool
	// Anchor is the rune offset of the candidate's trigger.
	Anchor   int
	Query    string
	Items    []mention.Mentionable
	Selected int
}

type SuggestionKeyMap struct {
	Accept key.Binding
	// AcceptTab makes tab accept as well.
	AcceptTab bool

	Dismiss  key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageNext key.Binding
	PagePrev key.Binding
}

func DefaultSuggestionKeyMap() SuggestionKeyMap {
	return SuggestionKeyMap{
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert mention")),
		AcceptTab: true,
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss suggestions")),
		Next:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next suggestion")),
		Prev:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev suggestion")),
		PageNext:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next page")),
		PagePrev:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
	}
}

func normalizeSuggestionKeyMap(km SuggestionKeyMap) SuggestionKeyMap {
	if reflect.DeepEqual(km, SuggestionKeyMap{}) {
		return DefaultSuggestionKeyMap()
	}
	return km
}

func normalizeSuggestionMaxVisibleRows(rows int) int {
	if rows <= 0 {
		return defaultSuggestionMaxVisibleRows
	}
	return rows
}

func normalizeSuggestionMaxWidth(width int) int {
	if width <= 0 {
		return defaultSuggestionMaxWidth
	}
	return width
}

func cloneSuggestionState(state SuggestionState) SuggestionState {
	if len(state.Items) == 0 {
		state.Items = nil
	} else {
		state.Items = append([]mention.Mentionable(nil), state.Items...)
	}
	return state
}

// SuggestionState returns a copy of the popup state.
func (m Model) SuggestionState() SuggestionState {
	return cloneSuggestionState(m.suggest)
}

// SelectedSuggestion returns the highlighted item of a visible popup.
func (m Model) SelectedSuggestion() (mention.Mentionable, bool) {
	if !m.suggest.Visible || len(m.suggest.Items) == 0 {
		return nil, false
	}
	return m.suggest.Items[clampInt(m.suggest.Selected, 0, len(m.suggest.Items)-1)], true
}

// DismissSuggestions hides the popup until the candidate at the cursor moves
// to another trigger.
func (m Model) DismissSuggestions() Model {
	if m.suggest.Visible {
		m.dismissed = dismissal{anchor: m.suggest.Anchor, ok: true}
	}
	m.suggest = SuggestionState{}
	if m.cfg.OnCandidates != nil {
		m.cfg.OnCandidates(nil)
	}
	m.rebuildContent()
	return m
}

type dismissal struct {
	anchor int
	ok     bool
}

// applyCandidates updates the popup from an engine update.
func (m *Model) applyCandidates(up mention.Update) {
	if m.cfg.OnCandidates != nil {
		m.cfg.OnCandidates(append([]mention.Mentionable(nil), up.Candidates...))
	}

	if !up.HasCandidate || up.Committed {
		m.dismissed = dismissal{}
		m.suggest = SuggestionState{}
		return
	}
	if m.dismissed.ok && m.dismissed.anchor != up.Candidate.Start {
		m.dismissed = dismissal{}
	}
	if len(up.Candidates) == 0 || m.dismissed.ok {
		m.suggest = SuggestionState{}
		return
	}

	selected := 0
	if m.suggest.Visible && m.suggest.Anchor == up.Candidate.Start {
		selected = clampInt(m.suggest.Selected, 0, len(up.Candidates)-1)
	}
	m.suggest = SuggestionState{
		Visible:  true,
		Anchor:   up.Candidate.Start,
		Query:    up.Candidate.Query(),
		Items:    append([]mention.Mentionable(nil), up.Candidates...),
		Selected: selected,
	}
}

func (m *Model) hideSuggestions() {
	m.suggest = SuggestionState{}
	m.dismissed = dismissal{}
	if m.cfg.OnCandidates != nil {
		m.cfg.OnCandidates(nil)
	}
}

func (m *Model) moveSuggestion(delta int) {
	n := len(m.suggest.Items)
	if n == 0 {
		return
	}
	next := (m.suggest.Selected + delta) % n
	if next < 0 {
		next += n
	}
	m.suggest.Selected = next
}

func (m *Model) pageSuggestion(dir int) {
	n := len(m.suggest.Items)
	if n == 0 {
		return
	}
	page := minInt(m.cfg.SuggestionMaxVisibleRows, n)
	m.suggest.Selected = clampInt(m.suggest.Selected+dir*page, 0, n-1)
}
