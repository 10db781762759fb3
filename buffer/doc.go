// Package buffer implements the pure edit-surface model backing a mention field.
//
// Text is held as runes. The cursor is a single rune offset (selection is always
// collapsed) that never lands inside a grapheme cluster. Edits are half-open rune
// ranges: [Start, End).
package buffer
