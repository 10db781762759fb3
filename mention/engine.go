package mention

import "log/slog"

// State is the mention session state of an Engine.
type State uint8

const (
	StateIdle State = iota
	// StateCandidateOpen: a candidate sits at the cursor and is being resolved.
	StateCandidateOpen
	// StateShowing: several entities match; the host shows them for picking.
	StateShowing
	// StateCommitted: the last operation committed a mention.
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCandidateOpen:
		return "candidate-open"
	case StateShowing:
		return "showing"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Update is the result of Engine.Change.
type Update struct {
	Resolution

	// Candidate is the fragment that was resolved, if HasCandidate.
	Candidate    Candidate
	HasCandidate bool

	// Candidates is the suggestion list that was published to OnCandidates.
	Candidates []Mentionable

	// Synced is the mention list right after the new text was taken over,
	// before any commit. It pairs with the text the host passed in.
	Synced []Mentionable

	Committed bool
	// TextChanged reports that the engine's text or cursor now differ from
	// what was passed to Change (a commit happened or unpaired sentinels were
	// stripped). Hosts write Engine.Text and Engine.Cursor back to their edit
	// surface.
	TextChanged bool
}

// Engine owns the raw text, the cursor and the ordered mention list of one
// mention field. It is not safe for concurrent use.
type Engine struct {
	cfg Config
	log *slog.Logger

	text     []rune
	cursor   int
	mentions []Mentionable
	state    State
}

// New builds an engine. A sentinel that collides with the trigger or with
// query characters is replaced by DefaultSentinel, and the trigger falls back
// to DefaultTrigger if that still collides.
func New(cfg Config) *Engine {
	cfg = normalizeConfig(cfg)
	e := &Engine{
		cfg: cfg,
		log: cfg.Logger.With("component", "mention"),
	}
	if err := cfg.Validate(); err != nil {
		e.cfg.Sentinel = DefaultSentinel
		if e.cfg.Trigger == DefaultSentinel {
			e.cfg.Trigger = DefaultTrigger
		}
		e.log.Warn("invalid mention config, using defaults", "err", err,
			"sentinel", string(e.cfg.Sentinel), "trigger", string(e.cfg.Trigger))
		cfg = e.cfg
	}
	for _, r := range cfg.Text {
		if r != cfg.Sentinel {
			e.text = append(e.text, r)
		}
	}
	e.cursor = len(e.text)
	return e
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Text() string { return string(e.text) }

// Cursor returns the cursor as a rune offset into Text.
func (e *Engine) Cursor() int { return e.cursor }

func (e *Engine) State() State { return e.state }

// Mentions returns a copy of the mention list.
func (e *Engine) Mentions() []Mentionable {
	return append([]Mentionable(nil), e.mentions...)
}

// Candidate returns the candidate at the current cursor.
func (e *Engine) Candidate() (Candidate, bool) {
	return detectCandidate(e.text, e.cursor, e.cfg.Trigger)
}

// Reset clears text, mentions and state.
func (e *Engine) Reset() {
	e.text = nil
	e.cursor = 0
	e.mentions = nil
	e.state = StateIdle
}

// Change is the change hook: call it whenever the edit surface's text
// changes, passing the current candidate pool. The pool is not retained.
//
// Edits that removed sentinels drop their mentions. A unique exact match is
// committed on the spot.
func (e *Engine) Change(text string, cursor int, pool []Mentionable) Update {
	var up Update
	up.TextChanged = e.sync(text, cursor)
	up.Synced = e.Mentions()
	e.resolve(&up, pool, true)
	return up
}

// Move is Change for cursor-only updates. It refreshes the suggestions for
// the candidate at cursor but never commits: an exact match is offered as
// the single suggestion instead.
func (e *Engine) Move(cursor int, pool []Mentionable) Update {
	e.cursor = clampInt(cursor, 0, len(e.text))
	up := Update{Synced: e.Mentions()}
	e.resolve(&up, pool, false)
	return up
}

func (e *Engine) resolve(up *Update, pool []Mentionable, autoCommit bool) {
	c, ok := e.Candidate()
	if !ok {
		e.state = StateIdle
		up.Resolution = Resolution{Action: ActionShow}
		e.publish(up, nil)
		return
	}

	e.state = StateCandidateOpen
	up.Candidate, up.HasCandidate = c, true
	up.Resolution = Resolve(c.Text, pool, e.cfg.Trigger)
	if up.Action == ActionCommit && !autoCommit {
		up.Resolution = Resolution{Action: ActionShow, Matches: []Mentionable{up.Commit}}
	}

	switch up.Action {
	case ActionCommit:
		// Commit publishes the empty suggestion list itself.
		if e.Commit(up.Commit) {
			up.Committed = true
			up.TextChanged = true
			up.Candidates = nil
			return
		}
		e.state = StateIdle
		e.publish(up, nil)
	case ActionClear:
		e.state = StateIdle
		e.publish(up, nil)
	default:
		if len(up.Matches) > 0 {
			e.state = StateShowing
		} else {
			e.state = StateIdle
		}
		e.publish(up, up.Matches)
	}
}

// Sync takes over text and cursor like Change but resolves nothing: the
// session goes idle and suggestions are hidden. Hosts use it for undo and
// redo, where re-resolving would commit the restored fragment again. It
// reports whether unpaired sentinels were stripped.
func (e *Engine) Sync(text string, cursor int) bool {
	changed := e.sync(text, cursor)
	e.state = StateIdle
	if e.cfg.OnCandidates != nil {
		e.cfg.OnCandidates(nil)
	}
	return changed
}

// Restore replaces the whole engine state. mentions must align with the
// sentinels of text; on mismatch nothing changes and a *DesyncError is
// returned.
func (e *Engine) Restore(text string, cursor int, mentions []Mentionable) error {
	runes := []rune(text)
	if n := countSentinels(runes, e.cfg.Sentinel); n != len(mentions) {
		return &DesyncError{Sentinels: n, Mentions: len(mentions)}
	}
	e.text = runes
	e.cursor = clampInt(cursor, 0, len(runes))
	e.mentions = append([]Mentionable(nil), mentions...)
	e.state = StateIdle
	if e.cfg.OnCandidates != nil {
		e.cfg.OnCandidates(nil)
	}
	return nil
}

func (e *Engine) sync(text string, cursor int) (stripped bool) {
	next := []rune(text)
	if text != string(e.text) {
		clean, kept, cur, n := resync(e.text, e.mentions, next, cursor, e.cfg.Sentinel)
		if dropped := len(e.mentions) - len(kept); dropped > 0 {
			e.log.Debug("mentions removed by edit", "dropped", dropped, "remaining", len(kept))
		}
		if n > 0 {
			e.log.Warn("stripped unpaired sentinels", "count", n)
			stripped = true
		}
		next, e.mentions, cursor = clean, kept, cur
	}
	e.text = next
	e.cursor = clampInt(cursor, 0, len(e.text))
	return stripped
}

// Commit replaces the candidate at the cursor with a sentinel for m, inserts
// m into the mention list at the sentinel's ordinal position and moves the
// cursor past the inserted sentinel and space. It reports false and changes
// nothing when no valid candidate sits at the cursor.
func (e *Engine) Commit(m Mentionable) bool {
	if m == nil {
		return false
	}
	c, ok := e.Candidate()
	if !ok || !ValidCandidate(c.Text, e.cfg.Trigger) {
		return false
	}

	var committed bool
	switch e.cfg.CommitPolicy {
	case CommitReplaceAll:
		committed = e.commitReplaceAll(c, m)
	default:
		committed = e.commitSpan(c, m)
	}
	if !committed {
		return false
	}

	e.state = StateCommitted
	e.log.Debug("mention committed",
		"label", m.Label(),
		"policy", e.cfg.CommitPolicy.String(),
		"mentions", len(e.mentions),
	)
	if e.cfg.OnCandidates != nil {
		e.cfg.OnCandidates(nil)
	}
	return true
}

func (e *Engine) commitSpan(c Candidate, m Mentionable) bool {
	idx := countSentinels(e.text[:e.cursor], e.cfg.Sentinel)
	if idx > len(e.mentions) {
		e.log.Error("mention list out of sync", "sentinels_before_cursor", idx, "mentions", len(e.mentions))
		return false
	}

	mentions := make([]Mentionable, 0, len(e.mentions)+1)
	mentions = append(mentions, e.mentions[:idx]...)
	mentions = append(mentions, m)
	mentions = append(mentions, e.mentions[idx:]...)

	text := make([]rune, 0, len(e.text)-c.Len()+2)
	text = append(text, e.text[:c.Start]...)
	text = append(text, e.cfg.Sentinel, ' ')
	text = append(text, e.text[c.End:]...)

	e.mentions = mentions
	e.text = text
	e.cursor = c.End - c.Len() + 2
	return true
}

func (e *Engine) commitReplaceAll(c Candidate, m Mentionable) bool {
	lit := []rune(c.Text)

	text := make([]rune, 0, len(e.text)+1)
	mentions := make([]Mentionable, 0, len(e.mentions)+1)
	cursor := -1
	next := 0
	for i := 0; i < len(e.text); {
		if hasRunePrefix(e.text[i:], lit) {
			text = append(text, e.cfg.Sentinel)
			mentions = append(mentions, m)
			if i == c.Start {
				text = append(text, ' ')
				cursor = len(text)
			}
			i += len(lit)
			continue
		}
		if e.text[i] == e.cfg.Sentinel {
			if next >= len(e.mentions) {
				e.log.Error("mention list out of sync", "mentions", len(e.mentions))
				return false
			}
			mentions = append(mentions, e.mentions[next])
			next++
		}
		text = append(text, e.text[i])
		i++
	}
	if cursor < 0 {
		// An earlier overlapping occurrence swallowed the one at the cursor.
		return e.commitSpan(c, m)
	}

	e.text = text
	e.mentions = mentions
	e.cursor = cursor
	return true
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) == 0 || len(s) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

// Render renders the engine's text with the configured styles.
func (e *Engine) Render() ([]Segment, error) {
	return Render(string(e.text), e.mentions, RenderOptions{
		Sentinel:     e.cfg.Sentinel,
		BaseStyle:    e.cfg.BaseStyle,
		MentionStyle: e.cfg.MentionStyle,
	})
}

// Export returns the text with every mention replaced by its export value.
func (e *Engine) Export() (string, error) {
	return Export(string(e.text), e.mentions, e.cfg.Sentinel)
}

func (e *Engine) publish(up *Update, candidates []Mentionable) {
	up.Candidates = candidates
	if e.cfg.OnCandidates != nil {
		e.cfg.OnCandidates(candidates)
	}
}
