package editor

import (
	"github.com/iw2rmb/atmention/buffer"
	"github.com/iw2rmb/atmention/mention"
)

type ChangeEvent struct {
	Version uint64
	// Cursor is the rune offset into Text; Pos is the same position as
	// row and column.
	Cursor int
	Pos    buffer.Pos

	// Text is the raw text, sentinels included.
	Text     string
	Mentions []mention.Mentionable

	// Export is Text with mentions replaced by their export values. It is
	// empty when ExportErr is set.
	Export    string
	ExportErr error
}

func buildChangeEvent(b *buffer.Buffer, e *mention.Engine) ChangeEvent {
	ev := ChangeEvent{
		Version:  b.Version(),
		Cursor:   b.Cursor(),
		Pos:      b.CursorPos(),
		Text:     b.Text(),
		Mentions: e.Mentions(),
	}
	ev.Export, ev.ExportErr = e.Export()
	return ev
}
