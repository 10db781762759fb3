package buffer

import "github.com/iw2rmb/atmention/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

func (b *Buffer) Move(m Move) {
	next := b.clampOffset(b.moveCursor(b.cursor, m))
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

func (b *Buffer) moveCursor(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return grapheme.Prev(b.text, off)
	case DirRight:
		return grapheme.Next(b.text, off)
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveWord(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return prevWordBoundary(b.text, off)
	case DirRight:
		return nextWordBoundary(b.text, off)
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	p := b.PosFromOffset(off)
	switch dir {
	case DirHome:
		return b.lineStart(off)
	case DirEnd:
		return b.lineEnd(off)
	case DirUp:
		if p.Row == 0 {
			return off
		}
		return b.OffsetFromPos(Pos{Row: p.Row - 1, Col: p.Col})
	case DirDown:
		if b.lineEnd(off) == len(b.text) {
			return off
		}
		return b.OffsetFromPos(Pos{Row: p.Row + 1, Col: p.Col})
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return len(b.text)
	default:
		return off
	}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - newline counts as whitespace
func prevWordBoundary(text []rune, off int) int {
	i := clampInt(off, 0, len(text))
	for i > 0 && grapheme.IsSpace(string(text[i-1])) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(string(text[i-1])) {
		i--
	}
	return i
}

func nextWordBoundary(text []rune, off int) int {
	i := clampInt(off, 0, len(text))
	for i < len(text) && grapheme.IsSpace(string(text[i])) {
		i++
	}
	for i < len(text) && !grapheme.IsSpace(string(text[i])) {
		i++
	}
	return i
}
