package main

import (
	"log/slog"

	"golang.design/x/clipboard"

	"github.com/iw2rmb/atmention/editor"
)

// systemClipboard reads the OS clipboard for ctrl+v.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// newSystemClipboard returns nil when the platform has no clipboard, e.g. a
// headless session. Paste then only works through the terminal.
func newSystemClipboard(log *slog.Logger) editor.Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Warn("system clipboard unavailable", "err", err)
		return nil
	}
	return systemClipboard{}
}
