package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/atmention/internal/grapheme"
	"github.com/iw2rmb/atmention/mention"
)

const tabWidth = 4

// layout is the result of the last render: the cursor row for scrolling and
// the screen cell of the suggestion anchor for popup placement.
type layout struct {
	lines     []string
	cursorRow int

	// cells and rowEnds map screen cells back to rune offsets.
	cells   [][]hitCell
	rowEnds []int

	anchorRow int
	anchorCol int
	hasAnchor bool
}

func (m *Model) renderContent() string {
	if m.eng == nil {
		return ""
	}

	segs, err := m.eng.Render()
	if err != nil {
		// Never hide text: show raw runes when mentions cannot be aligned.
		m.log.Warn("render failed, showing raw text", "err", err)
		segs = []mention.Segment{{
			Kind:  mention.SegmentPlain,
			Text:  m.eng.Text(),
			Style: m.cfg.Style.Text,
		}}
	}

	anchor := -1
	if m.suggest.Visible {
		anchor = m.suggest.Anchor
	}
	m.layout = layoutSegments(segs, layoutInput{
		cursor:      m.eng.Cursor(),
		length:      utf8.RuneCountInString(m.eng.Text()),
		anchor:      anchor,
		focused:     m.focused,
		cursorStyle: m.cfg.Style.Cursor,
	})
	return strings.Join(m.layout.lines, "\n")
}

type layoutInput struct {
	cursor  int
	length  int
	anchor  int
	focused bool

	cursorStyle lipgloss.Style
}

// layoutSegments lays rendered segments out in lines, drawing the cursor over
// the grapheme or mention it sits on. Cursor at end of line is drawn as a
// one-cell placeholder.
func layoutSegments(segs []mention.Segment, in layoutInput) layout {
	var (
		l   layout
		sb  strings.Builder
		row int
		col int
	)
	mark := func(off int) {
		if off == in.anchor {
			l.anchorRow, l.anchorCol, l.hasAnchor = row, col, true
		}
		if off == in.cursor {
			l.cursorRow = row
		}
	}
	cursorAt := func(off int) bool { return in.focused && off == in.cursor }
	var cells []hitCell
	hit := func(off, n, w int) {
		cells = append(cells, hitCell{col: col, width: w, off: off, runes: n})
	}
	endRow := func(off int) {
		l.lines = append(l.lines, sb.String())
		l.cells = append(l.cells, cells)
		l.rowEnds = append(l.rowEnds, off)
		sb.Reset()
		cells = nil
	}
	newline := func(off int) {
		endRow(off)
		row++
		col = 0
	}

	for _, seg := range segs {
		if seg.Kind == mention.SegmentMention {
			mark(seg.Start)
			st := seg.Style
			if cursorAt(seg.Start) {
				st = in.cursorStyle.Inherit(seg.Style)
			}
			sb.WriteString(st.Render(seg.Text))
			w := cellWidth(seg.Text, col)
			hit(seg.Start, 1, w)
			col += w
			continue
		}

		off := seg.Start
		for _, gr := range grapheme.Split(seg.Text) {
			mark(off)
			n := utf8.RuneCountInString(gr)
			if gr == "\n" || gr == "\r\n" {
				if cursorAt(off) {
					sb.WriteString(in.cursorStyle.Render(" "))
				}
				newline(off)
				off += n
				continue
			}

			text := gr
			w := cellWidth(gr, col)
			if gr == "\t" {
				text = strings.Repeat(" ", w)
			}
			st := seg.Style
			if cursorAt(off) {
				st = in.cursorStyle.Inherit(seg.Style)
			}
			sb.WriteString(st.Render(text))
			hit(off, n, w)
			col += w
			off += n
		}
	}

	mark(in.length)
	if cursorAt(in.length) {
		sb.WriteString(in.cursorStyle.Render(" "))
	}
	endRow(in.length)
	return l
}

func cellWidth(text string, startCol int) int {
	if text == "\t" {
		return tabWidth - startCol%tabWidth
	}
	w := runewidth.StringWidth(text)
	if w <= 0 {
		w = uniseg.StringWidth(text)
	}
	return w
}
