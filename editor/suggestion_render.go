package editor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/atmention/mention"
)

type suggestionPopupRender struct {
	View string
	// Rows are the rendered popup rows before compositing.
	Rows []string
	// X and Y are viewport-local; First is the item index of the top row.
	X, Y  int
	Width int
	First int
}

func (m Model) suggestionPopupRender(base string) (suggestionPopupRender, bool) {
	popup, ok := m.suggestionPopupPlace()
	if !ok {
		return suggestionPopupRender{}, false
	}

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	popup.View = overlay.Composite(
		strings.Join(popup.Rows, "\n"),
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+popup.X,
		topFrame+popup.Y,
	)
	return popup, true
}

// suggestionPopupPlace renders the popup rows and places them below the
// anchor, or above it when there is more room there.
func (m Model) suggestionPopupPlace() (suggestionPopupRender, bool) {
	state := m.suggest
	if !state.Visible || !m.focused || len(state.Items) == 0 || !m.layout.hasAnchor {
		return suggestionPopupRender{}, false
	}

	viewportWidth := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	viewportHeight := m.visibleRowCount()
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return suggestionPopupRender{}, false
	}

	anchorX := m.layout.anchorCol
	anchorY := m.layout.anchorRow - m.viewport.YOffset
	if anchorY < 0 || anchorY >= viewportHeight {
		return suggestionPopupRender{}, false
	}

	targetRows := minInt(m.cfg.SuggestionMaxVisibleRows, len(state.Items))
	belowAvail := maxInt(viewportHeight-(anchorY+1), 0)
	aboveAvail := maxInt(anchorY, 0)
	showBelow := true
	rowCount := targetRows
	if rowCount > belowAvail {
		if aboveAvail >= rowCount {
			showBelow = false
		} else if aboveAvail > belowAvail {
			showBelow = false
			rowCount = aboveAvail
		} else {
			rowCount = belowAvail
		}
	}
	if rowCount <= 0 {
		return suggestionPopupRender{}, false
	}

	selected := clampInt(state.Selected, 0, len(state.Items)-1)
	first := clampInt(selected-rowCount+1, 0, len(state.Items)-rowCount)
	items := state.Items[first : first+rowCount]

	widthCap := minInt(m.cfg.SuggestionMaxWidth, viewportWidth)
	popupWidth := 0
	for _, item := range items {
		popupWidth = maxInt(popupWidth, ansi.StringWidth(suggestionRowText(item)))
	}
	popupWidth = minInt(popupWidth, widthCap)
	if popupWidth <= 0 {
		return suggestionPopupRender{}, false
	}

	rows := make([]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, m.renderSuggestionRow(item, first+i == selected, popupWidth))
	}

	y := anchorY + 1
	if !showBelow {
		y = anchorY - len(rows)
	}
	y = clampInt(y, 0, maxInt(viewportHeight-len(rows), 0))
	x := clampInt(anchorX, 0, maxInt(viewportWidth-popupWidth, 0))

	return suggestionPopupRender{
		Rows:  rows,
		X:     x,
		Y:     y,
		Width: popupWidth,
		First: first,
	}, true
}

func suggestionRowText(item mention.Mentionable) string {
	label := sanitizeSingleLine(item.FullLabel())
	detail := sanitizeSingleLine(item.ExportValue())
	if detail == "" || detail == label {
		return " " + label + " "
	}
	return " " + label + "  " + detail + " "
}

func (m Model) renderSuggestionRow(item mention.Mentionable, selected bool, width int) string {
	base := m.cfg.Style.Suggestion
	if selected {
		base = m.cfg.Style.SuggestionSelected
	}

	label := sanitizeSingleLine(item.FullLabel())
	detail := sanitizeSingleLine(item.ExportValue())

	var sb strings.Builder
	sb.WriteString(base.Render(" " + label + " "))
	if detail != "" && detail != label {
		sb.WriteString(base.Render(" "))
		sb.WriteString(m.cfg.Style.SuggestionDetail.Inherit(base).Render(detail + " "))
	}

	row := ansi.Truncate(sb.String(), width, "…")
	if used := ansi.StringWidth(row); used < width {
		row += base.Render(strings.Repeat(" ", width-used))
	}
	return row
}
