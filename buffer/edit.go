package buffer

import "github.com/iw2rmb/atmention/internal/grapheme"

// InsertText inserts text at the cursor.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	b.applyLocal(ChangeSourceLocal, TextEdit{Start: b.cursor, End: b.cursor, Text: s})
}

// InsertRune inserts a single rune at the cursor.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics: the grapheme cluster before the
// cursor is removed.
func (b *Buffer) DeleteBackward() {
	if b.cursor == 0 {
		return
	}
	start := grapheme.Prev(b.text, b.cursor)
	b.applyLocal(ChangeSourceLocal, TextEdit{Start: start, End: b.cursor})
}

// DeleteForward applies delete-key semantics: the grapheme cluster after the
// cursor is removed.
func (b *Buffer) DeleteForward() {
	if b.cursor >= len(b.text) {
		return
	}
	end := grapheme.Next(b.text, b.cursor)
	b.applyLocal(ChangeSourceLocal, TextEdit{Start: b.cursor, End: end})
}

// Apply applies a sequence of text edits in order. Each edit's range is
// interpreted against the buffer state at the time that edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.applyLocal(ChangeSourceHost, edits...)
}

// Replace swaps the whole document for text and places the cursor at cursor.
// It is recorded as a single undoable change. Hosts use it to write back text
// that was rewritten outside the buffer.
func (b *Buffer) Replace(text string, cursor int) {
	if text == string(b.text) {
		b.SetCursor(cursor)
		return
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceHost)

	before := string(b.text)
	b.text = []rune(text)
	b.cursor = b.clampOffset(cursor)
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	if applied, ok := replacementAppliedEdit(before, text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}

func (b *Buffer) applyLocal(source ChangeSource, edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(source)

	anyChanged := false
	lastCursor := b.cursor
	for _, e := range edits {
		nextCursor, applied, changed := b.replaceRange(e)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}
	if !anyChanged {
		return
	}

	b.cursor = b.clampOffset(lastCursor)
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
}

func (b *Buffer) replaceRange(e TextEdit) (nextCursor int, applied AppliedEdit, changed bool) {
	e = e.normalize(len(b.text))
	deleted := string(b.text[e.Start:e.End])
	if deleted == e.Text {
		return b.cursor, AppliedEdit{}, false
	}

	ins := []rune(e.Text)
	out := make([]rune, 0, len(b.text)-(e.End-e.Start)+len(ins))
	out = append(out, b.text[:e.Start]...)
	out = append(out, ins...)
	out = append(out, b.text[e.End:]...)
	b.text = out

	return e.Start + len(ins), AppliedEdit{
		Start:       e.Start,
		InsertText:  e.Text,
		DeletedText: deleted,
	}, true
}
