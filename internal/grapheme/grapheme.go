package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Boundaries returns the rune offsets at which grapheme clusters start, plus
// the total rune length as the final entry.
//
// For "ae\u0301b" the result is [0 1 3 4].
func Boundaries(runes []rune) []int {
	out := []int{0}
	if len(runes) == 0 {
		return out
	}
	g := uniseg.NewGraphemes(string(runes))
	off := 0
	for g.Next() {
		off += len(g.Runes())
		out = append(out, off)
	}
	return out
}

// Prev returns the start of the cluster that ends at or contains off.
func Prev(runes []rune, off int) int {
	if off <= 0 {
		return 0
	}
	bounds := Boundaries(runes)
	prev := 0
	for _, b := range bounds {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// Next returns the end of the cluster that starts at or contains off.
func Next(runes []rune, off int) int {
	if off >= len(runes) {
		return len(runes)
	}
	for _, b := range Boundaries(runes) {
		if b > off {
			return b
		}
	}
	return len(runes)
}

// Snap moves off left onto the nearest cluster boundary.
func Snap(runes []rune, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(runes) {
		return len(runes)
	}
	snapped := 0
	for _, b := range Boundaries(runes) {
		if b > off {
			break
		}
		snapped = b
	}
	return snapped
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
