package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused || m.buf == nil {
		return m, cmd
	}

	// Only left presses place the cursor.
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}
	if !m.mouseInBounds(msg.X, msg.Y) {
		return m, cmd
	}

	if popup, ok := m.suggestionPopupPlace(); ok && m.inPopup(popup, msg.X, msg.Y) {
		m.suggest.Selected = popup.First + msg.Y - popup.Y
		if m.cfg.ReadOnly {
			return m, cmd
		}
		return m.AcceptSuggestion(), cmd
	}

	m.buf.SetCursor(m.screenToOffset(msg.X, msg.Y))
	return m, cmd
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) inPopup(p suggestionPopupRender, x, y int) bool {
	if len(p.Rows) == 0 {
		return false
	}
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+len(p.Rows)
}
