package editor

// hitCell is one drawn grapheme or mention in the last layout.
type hitCell struct {
	col   int
	width int
	off   int
	runes int
}

// offsetAt maps a layout row and cell column to a rune offset.
//
// Mapping rules:
// - rows and columns are clamped into the layout
// - a click past the end of a row maps to the row end
// - a mention maps to the side of its sentinel nearest the click
func (l layout) offsetAt(row, col int) int {
	if len(l.cells) == 0 {
		return 0
	}
	row = clampInt(row, 0, len(l.cells)-1)
	if col < 0 {
		col = 0
	}
	for _, c := range l.cells[row] {
		if col >= c.col+c.width {
			continue
		}
		if col-c.col < (c.width+1)/2 {
			return c.off
		}
		return c.off + c.runes
	}
	return l.rowEnds[row]
}

// screenToOffset maps viewport-local mouse coordinates to a rune offset.
//
// Coordinates are in terminal cells: (0,0) is the top-left of the visible
// content region.
func (m *Model) screenToOffset(x, y int) int {
	return m.layout.offsetAt(m.viewport.YOffset+y, x)
}
