package mention

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls [][]Mentionable
}

func (r *recorder) on(ms []Mentionable) {
	r.calls = append(r.calls, append([]Mentionable(nil), ms...))
}

func (r *recorder) last() []Mentionable {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func requireAligned(t *testing.T, e *Engine) {
	t.Helper()
	require.Equal(t, len(e.Mentions()), CountSentinels(e.Text(), e.Config().Sentinel),
		"sentinels in %q vs %d mentions", e.Text(), len(e.Mentions()))
}

// typeText feeds text to e one rune at a time, the way an edit surface would.
func typeText(e *Engine, text string, pool []Mentionable) Update {
	var up Update
	for _, r := range text {
		cur := []rune(e.Text())
		pos := e.Cursor()
		next := string(cur[:pos]) + string(r) + string(cur[pos:])
		up = e.Change(next, pos+1, pool)
	}
	return up
}

func TestNewDefaults(t *testing.T) {
	e := New(Config{})
	cfg := e.Config()
	require.Equal(t, DefaultSentinel, cfg.Sentinel)
	require.Equal(t, DefaultTrigger, cfg.Trigger)
	require.True(t, cfg.MentionStyle.GetBold())
	require.NotNil(t, cfg.Logger)
	require.Equal(t, CommitSpan, cfg.CommitPolicy)
	require.Equal(t, StateIdle, e.State())
	require.Equal(t, "", e.Text())
	require.Empty(t, e.Mentions())
}

func TestNewStripsSeedSentinels(t *testing.T) {
	e := New(Config{Text: "a" + string(s) + "b"})
	require.Equal(t, "ab", e.Text())
	require.Equal(t, 2, e.Cursor())
	requireAligned(t, e)
}

func TestFirstKeystrokeOpensCandidate(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	up := e.Change("@", 1, Pool(Entity{Name: "John"}))

	require.True(t, up.HasCandidate)
	require.Equal(t, "@", up.Candidate.Text)
	require.Equal(t, ActionClear, up.Action)
	require.Equal(t, StateIdle, e.State())
	require.Len(t, rec.calls, 1)
	require.Empty(t, rec.last())
}

func TestChangeShowsMatches(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	pool := Pool(Entity{Name: "John"}, Entity{Name: "Jordan"})

	up := e.Change("Hello @jo", 9, pool)
	require.Equal(t, ActionShow, up.Action)
	require.Equal(t, []string{"John", "Jordan"}, labels(up.Candidates))
	require.Equal(t, []string{"John", "Jordan"}, labels(rec.last()))
	require.Equal(t, StateShowing, e.State())
	require.False(t, up.Committed)
	require.False(t, up.TextChanged)
}

func TestChangeAutoCommitsPerfectMatch(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	john := person{label: "John", accept: []string{"John"}}

	up := e.Change("Hello @John", 11, []Mentionable{john})
	require.Equal(t, ActionCommit, up.Action)
	require.True(t, up.Committed)
	require.True(t, up.TextChanged)
	require.Equal(t, "Hello "+string(s)+" ", e.Text())
	require.Equal(t, 8, e.Cursor())
	require.Equal(t, []Mentionable{john}, e.Mentions())
	require.Equal(t, StateCommitted, e.State())
	require.Empty(t, rec.last())
	requireAligned(t, e)
}

func TestCommitSplicesCandidateSpan(t *testing.T) {
	e := New(Config{})
	john := Entity{Name: "John"}
	e.Change("Hello @John", 11, nil)

	require.True(t, e.Commit(john))
	require.Equal(t, "Hello "+string(s)+" ", e.Text())
	require.Equal(t, 11-5+2, e.Cursor())
	require.Equal(t, Pool(john), e.Mentions())
	requireAligned(t, e)
}

func TestCommitWithoutCandidateIsNoop(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	e.Change("plain", 5, nil)
	calls := len(rec.calls)

	require.False(t, e.Commit(Entity{Name: "John"}))
	require.False(t, e.Commit(nil))
	require.Equal(t, "plain", e.Text())
	require.Empty(t, e.Mentions())
	require.Len(t, rec.calls, calls)

	// A bare trigger is detected but not a valid candidate.
	e.Change("plain @", 7, nil)
	require.False(t, e.Commit(Entity{Name: "John"}))
	require.Equal(t, "plain @", e.Text())
}

func TestCommitInsertsInCursorOrder(t *testing.T) {
	a := Entity{Name: "Ann"}
	b := Entity{Name: "Bob"}
	c := Entity{Name: "Cy"}
	e := New(Config{})

	// "@ann " then "@cy ", then go back and mention Bob between them.
	e.Change("@ann", 4, nil)
	require.True(t, e.Commit(a))
	typeText(e, "and ", nil)
	typeText(e, "@cy", nil)
	require.True(t, e.Commit(c))
	requireAligned(t, e)
	require.Equal(t, []string{"Ann", "Cy"}, labels(e.Mentions()))

	text := []rune(e.Text())
	mid := 2 // right after the first sentinel and its space
	next := string(text[:mid]) + "@bo" + string(text[mid:])
	e.Change(next, mid+3, nil)
	require.True(t, e.Commit(b))
	requireAligned(t, e)
	require.Equal(t, []string{"Ann", "Bob", "Cy"}, labels(e.Mentions()))

	out, err := e.Export()
	require.NoError(t, err)
	require.Equal(t, "@Ann @Bob and @Cy ", out)
}

func TestInvariantHoldsAfterEveryCommit(t *testing.T) {
	pool := Pool(
		Entity{Name: "John"},
		Entity{Name: "Jordan"},
		Entity{Name: "Mary"},
	)
	e := New(Config{})
	script := []struct {
		typed  string
		commit string
	}{
		{"Hi @ma", "Mary"},
		{"and @jo", "Jordan"},
		{"cc @jo", "John"},
		{"@j", "John"},
	}
	byLabel := map[string]Mentionable{}
	for _, m := range pool {
		byLabel[m.Label()] = m
	}
	for _, step := range script {
		typeText(e, step.typed, pool)
		requireAligned(t, e)
		if e.State() == StateCommitted {
			continue
		}
		require.Truef(t, e.Commit(byLabel[step.commit]), "commit %s in %q", step.commit, e.Text())
		requireAligned(t, e)
	}
	require.Equal(t, []string{"Mary", "Jordan", "John", "John"}, labels(e.Mentions()))

	out, err := e.Export()
	require.NoError(t, err)
	require.Equal(t, "Hi @Mary and @Jordan cc @John @John ", out)
}

func TestEngineRenderIsIdempotent(t *testing.T) {
	e := New(Config{})
	e.Change("@ann", 4, nil)
	e.Commit(Entity{Name: "Ann", Display: "Ann Lee"})
	typeText(e, "hi", nil)

	first, err := e.Render()
	require.NoError(t, err)
	second, err := e.Render()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "Ann Lee", first[0].Text)
	require.Equal(t, " hi", first[1].Text)
	require.True(t, first[0].Style.GetBold())
	require.Len(t, e.Mentions(), 1)
}

func TestBackspaceOverSentinelDropsMention(t *testing.T) {
	e := New(Config{})
	e.Change("@ann", 4, nil)
	require.True(t, e.Commit(Entity{Name: "Ann"}))
	typeText(e, "@bob", nil)
	require.True(t, e.Commit(Entity{Name: "Bob"}))
	require.Equal(t, string(s)+" "+string(s)+" ", e.Text())

	// Delete the first sentinel with the cursor right after it.
	text := []rune(e.Text())
	up := e.Change(string(text[1:]), 0, nil)
	require.False(t, up.TextChanged)
	require.Equal(t, []string{"Bob"}, labels(e.Mentions()))
	requireAligned(t, e)
}

func TestSelectionDeleteDropsEnclosedMentions(t *testing.T) {
	e := New(Config{})
	e.Change("@a", 2, nil)
	e.Commit(Entity{Name: "A"})
	typeText(e, "@b", nil)
	e.Commit(Entity{Name: "B"})
	typeText(e, "@c", nil)
	e.Commit(Entity{Name: "C"})
	// S␠S␠S␠ -> drop the middle "S␠".
	text := []rune(e.Text())
	e.Change(string(text[:2])+string(text[4:]), 2, nil)
	require.Equal(t, []string{"A", "C"}, labels(e.Mentions()))
	requireAligned(t, e)
}

func TestPastedSentinelIsStripped(t *testing.T) {
	e := New(Config{})
	e.Change("ab", 2, nil)
	up := e.Change("a"+string(s)+"b", 2, nil)
	require.True(t, up.TextChanged)
	require.Equal(t, "ab", e.Text())
	require.Equal(t, 1, e.Cursor())
	require.Empty(t, e.Mentions())
}

func TestResyncKeepsMentionsOutsideEdit(t *testing.T) {
	a := Entity{Name: "A"}
	b := Entity{Name: "B"}
	old := "x" + string(s) + "yy" + string(s) + "z"

	text, kept, cur := Resync(old, Pool(a, b), "x"+string(s)+"yQy"+string(s)+"z", 4, s)
	require.Equal(t, "x"+string(s)+"yQy"+string(s)+"z", text)
	require.Equal(t, Pool(a, b), kept)
	require.Equal(t, 4, cur)

	text, kept, cur = Resync(old, Pool(a, b), "x"+string(s)+"z", 2, s)
	require.Equal(t, "x"+string(s)+"z", text)
	require.Equal(t, Pool(a), kept)
	require.Equal(t, 2, cur)
}

func TestResyncAdjacentSentinelsUsesCursor(t *testing.T) {
	a := Entity{Name: "A"}
	b := Entity{Name: "B"}
	old := string(s) + string(s)

	// Backspace with the cursor after the second sentinel removes B.
	_, kept, _ := Resync(old, Pool(a, b), string(s), 1, s)
	require.Equal(t, Pool(a), kept)

	// Backspace with the cursor after the first sentinel removes A.
	_, kept, _ = Resync(old, Pool(a, b), string(s), 0, s)
	require.Equal(t, Pool(b), kept)
}

func TestReplaceAllPolicy(t *testing.T) {
	e := New(Config{CommitPolicy: CommitReplaceAll})
	john := Entity{Name: "John"}
	e.Change("@jo said @jo", 12, nil)

	require.True(t, e.Commit(john))
	require.Equal(t, string(s)+" said "+string(s)+" ", e.Text())
	require.Equal(t, 9, e.Cursor())
	require.Equal(t, Pool(john, john), e.Mentions())
	requireAligned(t, e)
}

func TestReplaceAllKeepsExistingMentionsAligned(t *testing.T) {
	e := New(Config{CommitPolicy: CommitReplaceAll})
	ann := Entity{Name: "Ann"}
	bob := Entity{Name: "Bob"}

	e.Change("@ann", 4, nil)
	require.True(t, e.Commit(ann))
	typeText(e, "@bo x @bo", nil)
	require.True(t, e.Commit(bob))

	require.Equal(t, []string{"Ann", "Bob", "Bob"}, labels(e.Mentions()))
	requireAligned(t, e)
	out, err := e.Export()
	require.NoError(t, err)
	require.Equal(t, "@Ann @Bob x @Bob ", out)
}

func TestSpanPolicyLeavesOtherOccurrences(t *testing.T) {
	e := New(Config{})
	e.Change("@jo said @jo", 12, nil)
	require.True(t, e.Commit(Entity{Name: "John"}))
	require.Equal(t, "@jo said "+string(s)+" ", e.Text())
	require.Equal(t, 11, e.Cursor())
}

func TestCustomTriggerAndSentinel(t *testing.T) {
	const alt = '\uE001'
	e := New(Config{Trigger: '#', Sentinel: alt})
	e.Change("see #ops", 8, nil)
	require.True(t, e.Commit(Entity{Name: "ops", Value: "<#ops>"}))
	require.Equal(t, "see "+string(alt)+" ", e.Text())

	out, err := e.Export()
	require.NoError(t, err)
	require.Equal(t, "see <#ops> ", out)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{}.Validate())
	require.Error(t, Config{Trigger: '@', Sentinel: '@'}.Validate())
	require.Error(t, Config{Sentinel: 'a'}.Validate())
	require.Error(t, Config{CommitPolicy: CommitPolicy(9)}.Validate())
}

func TestParseCommitPolicy(t *testing.T) {
	p, err := ParseCommitPolicy("replace-all")
	require.NoError(t, err)
	require.Equal(t, CommitReplaceAll, p)
	p, err = ParseCommitPolicy("")
	require.NoError(t, err)
	require.Equal(t, CommitSpan, p)
	_, err = ParseCommitPolicy("everything")
	require.Error(t, err)
}

func TestReset(t *testing.T) {
	e := New(Config{})
	e.Change("@ann", 4, nil)
	e.Commit(Entity{Name: "Ann"})
	e.Reset()
	require.Equal(t, "", e.Text())
	require.Equal(t, 0, e.Cursor())
	require.Empty(t, e.Mentions())
	require.Equal(t, StateIdle, e.State())
}

func TestSyncDoesNotResolve(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	pool := Pool(Entity{Name: "John"})

	require.False(t, e.Sync("Hello @John", 11))
	require.Equal(t, "Hello @John", e.Text())
	require.Empty(t, e.Mentions())
	require.Equal(t, StateIdle, e.State())
	require.Empty(t, rec.last())

	up := e.Change("Hello @John", 11, pool)
	require.True(t, up.Committed)
}

func TestRestore(t *testing.T) {
	e := New(Config{})
	ann := Entity{Name: "Ann"}

	require.NoError(t, e.Restore("hi "+string(s), 4, Pool(ann)))
	require.Equal(t, "hi "+string(s), e.Text())
	require.Equal(t, 4, e.Cursor())
	require.Equal(t, Pool(ann), e.Mentions())

	err := e.Restore("plain", 0, Pool(ann))
	require.ErrorIs(t, err, ErrDesync)
	require.Equal(t, "hi "+string(s), e.Text())
}

func TestNewFallsBackOnInvalidSentinel(t *testing.T) {
	e := New(Config{Trigger: '@', Sentinel: '@'})
	require.Equal(t, DefaultSentinel, e.Config().Sentinel)
	require.Equal(t, '@', e.Config().Trigger)
	require.NoError(t, e.Config().Validate())

	e = New(Config{Sentinel: 'x', Text: "box"})
	require.Equal(t, DefaultSentinel, e.Config().Sentinel)
	require.Equal(t, "box", e.Text(), "query characters must survive as text")

	e = New(Config{Trigger: DefaultSentinel, Sentinel: DefaultSentinel})
	require.Equal(t, DefaultTrigger, e.Config().Trigger)
	require.Equal(t, DefaultSentinel, e.Config().Sentinel)

	typeText(e, "@john", Pool(Entity{Name: "John"}))
	requireAligned(t, e)
	require.Len(t, e.Mentions(), 1)
}

func TestMoveNeverCommits(t *testing.T) {
	rec := &recorder{}
	e := New(Config{OnCandidates: rec.on})
	john := Entity{Name: "John"}
	pool := Pool(john)

	e.Sync("@john", 5)
	up := e.Move(4, pool)
	require.True(t, up.HasCandidate)
	require.Equal(t, "@joh", up.Candidate.Text)
	require.Equal(t, Pool(john), up.Candidates)

	up = e.Move(5, pool)
	require.False(t, up.Committed)
	require.False(t, up.TextChanged)
	require.Equal(t, ActionShow, up.Action)
	require.Equal(t, Pool(john), up.Candidates)
	require.Equal(t, Pool(john), rec.last())
	require.Equal(t, StateShowing, e.State())
	require.Equal(t, "@john", e.Text())
	require.Empty(t, e.Mentions())

	up = e.Move(0, pool)
	require.False(t, up.HasCandidate)
	require.Equal(t, StateIdle, e.State())
}

func TestChangeReportsSyncedMentions(t *testing.T) {
	e := New(Config{})
	ann := Entity{Name: "Ann"}
	typeText(e, "@ann", Pool(ann))
	require.Equal(t, Pool(ann), e.Mentions())

	up := typeText(e, "@ann", Pool(ann))
	require.True(t, up.Committed)
	require.Equal(t, Pool(ann), up.Synced, "mentions before the second commit")
	require.Equal(t, Pool(ann, ann), e.Mentions())
}
