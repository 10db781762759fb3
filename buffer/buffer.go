package buffer

import "github.com/iw2rmb/atmention/internal/grapheme"

type Options struct {
	HistoryLimit int // default: 1000
}

// Buffer is the pure document state: text and cursor.
type Buffer struct {
	text        []rune
	version     uint64
	textVersion uint64

	cursor int

	opt  Options
	hist historyState
	meta any

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		text: []rune(text),
		opt:  opt,
	}
}

func (b *Buffer) Text() string { return string(b.text) }

// Len returns the document length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Version increments on every effective text or cursor change.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion increments only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// Cursor returns the cursor as a rune offset.
func (b *Buffer) Cursor() int { return b.cursor }

// CursorPos returns the cursor as a (row, col) position.
func (b *Buffer) CursorPos() Pos { return b.PosFromOffset(b.cursor) }

// SetCursor moves the cursor, clamping into the document and snapping to the
// start of the grapheme cluster containing off.
func (b *Buffer) SetCursor(off int) {
	next := b.clampOffset(off)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// PosFromOffset converts a rune offset to a (row, col) position. Offsets are
// clamped into the document.
func (b *Buffer) PosFromOffset(off int) Pos {
	off = clampInt(off, 0, len(b.text))
	p := Pos{}
	for _, r := range b.text[:off] {
		if r == '\n' {
			p.Row++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// OffsetFromPos converts a (row, col) position to a rune offset, clamping the
// row into the document and the column into the row.
func (b *Buffer) OffsetFromPos(p Pos) int {
	if p.Row < 0 {
		return 0
	}
	row := 0
	start := 0
	for i, r := range b.text {
		if row == p.Row {
			break
		}
		if r == '\n' {
			row++
			start = i + 1
		}
	}
	if row < p.Row {
		// Past the last line.
		return len(b.text)
	}
	end := b.lineEnd(start)
	return clampInt(start+p.Col, start, end)
}

func (b *Buffer) lineStart(off int) int {
	for i := off; i > 0; i-- {
		if b.text[i-1] == '\n' {
			return i
		}
	}
	return 0
}

func (b *Buffer) lineEnd(off int) int {
	for i := off; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

func (b *Buffer) clampOffset(off int) int {
	return grapheme.Snap(b.text, clampInt(off, 0, len(b.text)))
}
