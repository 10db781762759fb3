package buffer

import (
	"reflect"
	"testing"
)

func TestBuffer_InsertText_MovesCursor(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(1)
	v := b.Version()

	b.InsertText("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_InsertRune_Unicode(t *testing.T) {
	b := New("", Options{})
	b.InsertRune('π')
	b.InsertRune('한')

	if got, want := b.Text(), "π한"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_RemovesWholeCluster(t *testing.T) {
	b := New("ae\u0301", Options{})
	b.SetCursor(99)
	b.DeleteBackward()

	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_AtStartIsNoOp(t *testing.T) {
	b := New("ab", Options{})
	v := b.Version()
	b.DeleteBackward()
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change recorded")
	}
}

func TestBuffer_DeleteForward_JoinsLinesAtEOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(2)

	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	b.SetCursor(4)
	v := b.Version()
	b.DeleteForward()
	if got := b.Version(); got != v {
		t.Fatalf("delete at EOF should be a no-op: version=%d, want %d", got, v)
	}
}

func TestBuffer_Apply_SequentialEditsAndChangeRecord(t *testing.T) {
	b := New("Hello @jo", Options{})
	b.SetCursor(9)

	b.Apply(
		TextEdit{Start: 6, End: 9, Text: "\uE000 "},
		TextEdit{Start: 0, End: 0, Text: ">"},
	)

	if got, want := b.Text(), ">Hello \uE000 "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected change recorded")
	}
	if got, want := ch.Source, ChangeSourceHost; got != want {
		t.Fatalf("change source: got %v, want %v", got, want)
	}
	want := []AppliedEdit{
		{Start: 6, InsertText: "\uE000 ", DeletedText: "@jo"},
		{Start: 0, InsertText: ">", DeletedText: ""},
	}
	if !reflect.DeepEqual(ch.AppliedEdits, want) {
		t.Fatalf("applied edits: got %+v, want %+v", ch.AppliedEdits, want)
	}
	if got, want := ch.CursorBefore, 9; got != want {
		t.Fatalf("cursor before: got %d, want %d", got, want)
	}
}

func TestBuffer_Apply_NoEffectiveEditIsNoOp(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()
	b.Apply(TextEdit{Start: 1, End: 2, Text: "b"}, TextEdit{Start: 5, End: 9})
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
}

func TestBuffer_Replace_IsSingleUndoStep(t *testing.T) {
	b := New("Hi @jo", Options{})
	b.SetCursor(6)

	b.Replace("Hi \uE000 ", 5)
	if got, want := b.Text(), "Hi \uE000 "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 5; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	if !b.Undo() {
		t.Fatalf("expected undo to succeed")
	}
	if got, want := b.Text(), "Hi @jo"; got != want {
		t.Fatalf("text after undo=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 6; got != want {
		t.Fatalf("cursor after undo=%d, want %d", got, want)
	}
}

func TestBuffer_Replace_SameTextOnlyMovesCursor(t *testing.T) {
	b := New("abc", Options{})
	b.Replace("abc", 2)
	if got := b.Cursor(); got != 2 {
		t.Fatalf("cursor=%d, want 2", got)
	}
	if b.CanUndo() {
		t.Fatalf("cursor-only replace should not record history")
	}
}
