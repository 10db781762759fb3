package buffer

// Pos is a (row, col) view of a rune offset. Row and Col are 0-based; Col is
// counted in runes from the start of the logical line.
type Pos struct {
	Row int
	Col int
}

// TextEdit replaces the runes in [Start, End) with Text.
type TextEdit struct {
	Start int
	End   int
	Text  string
}

func (e TextEdit) normalize(length int) TextEdit {
	e.Start = clampInt(e.Start, 0, length)
	e.End = clampInt(e.End, 0, length)
	if e.End < e.Start {
		e.Start, e.End = e.End, e.Start
	}
	return e
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
