package mention

import "strings"

// Action is what the host should do with a Resolution.
type Action uint8

const (
	// ActionShow shows Matches as suggestions (empty hides them).
	ActionShow Action = iota
	// ActionClear hides suggestions: the candidate is not a valid query.
	ActionClear
	// ActionCommit commits Commit: it is the one exact match.
	ActionCommit
)

func (a Action) String() string {
	switch a {
	case ActionShow:
		return "show"
	case ActionClear:
		return "clear"
	case ActionCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of matching a candidate against a pool.
type Resolution struct {
	Action  Action
	Matches []Mentionable
	Commit  Mentionable
}

// Resolve matches candidate (trigger included) against pool.
//
// More than one match is always shown so the user can choose. With at most
// one match, an entity whose label equals the query (ignoring case) is
// committed directly.
func Resolve(candidate string, pool []Mentionable, trigger rune) Resolution {
	if !ValidCandidate(candidate, trigger) {
		return Resolution{Action: ActionClear}
	}
	q := string([]rune(candidate)[1:])

	var matches []Mentionable
	for _, m := range pool {
		if m != nil && m.Matches(q) {
			matches = append(matches, m)
		}
	}
	if len(matches) > 1 {
		return Resolution{Action: ActionShow, Matches: matches}
	}

	var perfect []Mentionable
	for _, m := range matches {
		if strings.EqualFold(m.Label(), q) && m.Matches(q) {
			perfect = append(perfect, m)
		}
	}
	if len(perfect) == 1 {
		return Resolution{Action: ActionCommit, Commit: perfect[0]}
	}
	return Resolution{Action: ActionShow, Matches: matches}
}

// ResolveAt detects the candidate at cursor and resolves it. Without a
// candidate the result is an empty ActionShow.
func ResolveAt(text string, cursor int, pool []Mentionable, trigger rune) (Resolution, Candidate, bool) {
	c, ok := DetectCandidate(text, cursor, trigger)
	if !ok {
		return Resolution{Action: ActionShow}, Candidate{}, false
	}
	return Resolve(c.Text, pool, trigger), c, true
}
