package mention

import "regexp"

// Candidate is an in-progress mention: the text from the nearest trigger left
// of the cursor up to the cursor, trigger included. Start and End are rune
// offsets into the raw text, half-open.
type Candidate struct {
	Text  string
	Start int
	End   int
}

// Query returns the candidate text without its trigger rune.
func (c Candidate) Query() string {
	r := []rune(c.Text)
	if len(r) == 0 {
		return ""
	}
	return string(r[1:])
}

// Len returns the candidate length in runes, trigger included.
func (c Candidate) Len() int { return c.End - c.Start }

// DetectCandidate scans left from cursor (a rune offset) for the nearest
// trigger rune and returns the fragment it starts.
func DetectCandidate(text string, cursor int, trigger rune) (Candidate, bool) {
	return detectCandidate([]rune(text), cursor, trigger)
}

func detectCandidate(runes []rune, cursor int, trigger rune) (Candidate, bool) {
	if len(runes) == 0 {
		return Candidate{}, false
	}
	// A lone trigger is the very first keystroke of a mention.
	if len(runes) == 1 && runes[0] == trigger {
		return Candidate{Text: string(trigger), Start: 0, End: 1}, true
	}

	cursor = clampInt(cursor, 0, len(runes))
	for i := cursor - 1; i >= 0; i-- {
		if runes[i] == trigger {
			return Candidate{Text: string(runes[i:cursor]), Start: i, End: cursor}, true
		}
	}
	return Candidate{}, false
}

// queryRE is the grammar a query must follow once the trigger is stripped:
// Latin letters, Hangul syllables, digits, underscore and space.
var queryRE = regexp.MustCompile(`^[A-Za-z\x{AC00}-\x{D7A3}0-9_ ]+$`)

// ValidCandidate reports whether text is a trigger followed by at least one
// query character.
func ValidCandidate(text string, trigger rune) bool {
	r := []rune(text)
	if len(r) < 2 || r[0] != trigger {
		return false
	}
	return queryRE.MatchString(string(r[1:]))
}

func isQueryRune(r rune) bool {
	return queryRE.MatchString(string(r))
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
