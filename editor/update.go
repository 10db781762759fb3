package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/atmention/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	if m.suggest.Visible {
		if next, handled := m.updateSuggestionKey(msg); handled {
			return next, nil
		}
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.buf.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertNewline()
		}

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.buf.Redo()
		}

	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if m.cfg.ReadOnly {
			return m, nil
		}
		switch {
		case msg.Type == tea.KeySpace:
			m.buf.InsertRune(' ')
		case msg.Type == tea.KeyTab:
			m.buf.InsertRune('\t')
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.buf.InsertText(string(msg.Runes))
		}
	}

	return m, nil
}

// updateSuggestionKey routes keys that act on a visible popup. Keys it does
// not handle fall through to normal editing.
func (m Model) updateSuggestionKey(msg tea.KeyMsg) (Model, bool) {
	skm := m.cfg.SuggestionKeyMap
	switch {
	case key.Matches(msg, skm.Next):
		m.moveSuggestion(1)
	case key.Matches(msg, skm.Prev):
		m.moveSuggestion(-1)
	case key.Matches(msg, skm.PageNext):
		m.pageSuggestion(1)
	case key.Matches(msg, skm.PagePrev):
		m.pageSuggestion(-1)
	case key.Matches(msg, skm.Dismiss):
		return m.DismissSuggestions(), true
	case key.Matches(msg, skm.Accept), skm.AcceptTab && msg.Type == tea.KeyTab:
		if m.cfg.ReadOnly {
			return m, false
		}
		return m.AcceptSuggestion(), true
	default:
		return m, false
	}
	m.rebuildContent()
	return m, true
}

// AcceptSuggestion commits the highlighted suggestion. It does nothing when no
// popup is visible.
func (m Model) AcceptSuggestion() Model {
	item, ok := m.SelectedSuggestion()
	if !ok {
		return m
	}
	if !m.eng.Commit(item) {
		m.log.Debug("suggestion no longer applies", "label", item.Label())
		(&m).hideSuggestions()
		m.rebuildContent()
		return m
	}
	m.writeBack()
	(&m).hideSuggestions()
	m.buf.SetMeta(m.eng.Mentions())
	(&m).afterEdit()
	return m
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Warn("clipboard read failed", "err", err)
		return
	}
	if s == "" {
		return
	}
	m.buf.InsertText(normalizeNewlines(s))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
