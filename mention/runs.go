package mention

// Run is a piece of raw text produced by SplitRuns: either exactly one
// sentinel rune or the plain text between two sentinels.
type Run struct {
	Text     string
	Start    int // rune offset in the raw text
	Sentinel bool
}

// SplitRuns splits text using sentinel as both delimiter and token. Every
// sentinel becomes its own run and the text between sentinels becomes a plain
// run, empty when two sentinels are adjacent or the text starts or ends with
// one.
//
// "a<S><S>b" splits into "a", <S>, "", <S>, "b".
func SplitRuns(text string, sentinel rune) []Run {
	runes := []rune(text)
	out := make([]Run, 0, 1)
	start := 0
	for i, r := range runes {
		if r != sentinel {
			continue
		}
		out = append(out,
			Run{Text: string(runes[start:i]), Start: start},
			Run{Text: string(sentinel), Start: i, Sentinel: true},
		)
		start = i + 1
	}
	return append(out, Run{Text: string(runes[start:]), Start: start})
}

// Aligned pairs a run with the mention it consumed. Mention is nil for plain
// runs.
type Aligned struct {
	Run     Run
	Mention Mentionable
}

// Zip walks runs left to right and hands each sentinel run the next mention
// from a FIFO built fresh from mentions. mentions itself is never modified.
// A count mismatch fails with a *DesyncError before anything is paired.
func Zip(runs []Run, mentions []Mentionable) ([]Aligned, error) {
	sentinels := 0
	for _, r := range runs {
		if r.Sentinel {
			sentinels++
		}
	}
	if sentinels != len(mentions) {
		return nil, &DesyncError{Sentinels: sentinels, Mentions: len(mentions)}
	}

	queue := append([]Mentionable(nil), mentions...)
	out := make([]Aligned, 0, len(runs))
	for _, r := range runs {
		if !r.Sentinel {
			out = append(out, Aligned{Run: r})
			continue
		}
		next := queue[0]
		queue = queue[1:]
		out = append(out, Aligned{Run: r, Mention: next})
	}
	return out, nil
}

// CountSentinels returns how many sentinel runes text holds.
func CountSentinels(text string, sentinel rune) int {
	return countSentinels([]rune(text), sentinel)
}

func countSentinels(runes []rune, sentinel rune) int {
	n := 0
	for _, r := range runes {
		if r == sentinel {
			n++
		}
	}
	return n
}
