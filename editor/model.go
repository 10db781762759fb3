package editor

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/atmention/buffer"
	"github.com/iw2rmb/atmention/mention"
)

// Model is a Bubble Tea component that edits text with inline mentions.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	eng *mention.Engine
	log *slog.Logger

	pool    []mention.Mentionable
	hasPool bool

	focused bool

	viewport viewport.Model
	layout   layout

	suggest   SuggestionState
	dismissed dismissal

	lastBufVersion  uint64
	lastTextVersion uint64
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	eng := mention.New(cfg.mentionConfig())
	m := Model{
		cfg:      cfg,
		eng:      eng,
		buf:      buffer.New(eng.Text(), buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		log:      cfg.Logger.With("component", "editor"),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	// The field opens with the cursor at the end, like the engine.
	m.buf.SetCursor(m.buf.Len())
	m.buf.SetMeta(eng.Mentions())
	m.markSynced()
	m.rebuildContent()
	return m
}

// Buffer exposes the edit surface. Hosts that mutate it directly see their
// edits picked up on the next Update.
func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Engine exposes the mention engine. Hosts must not mutate its text through
// Change or Commit; use the Model instead.
func (m Model) Engine() *mention.Engine { return m.eng }

func (m Model) Text() string { return m.eng.Text() }

func (m Model) Mentions() []mention.Mentionable { return m.eng.Mentions() }

// Export returns the text with every mention replaced by its export value.
func (m Model) Export() (string, error) { return m.eng.Export() }

// SetPool fixes the candidate pool, overriding Config.Pool. A nil pool
// restores Config.Pool.
func (m Model) SetPool(pool []mention.Mentionable) Model {
	m.pool = append([]mention.Mentionable(nil), pool...)
	m.hasPool = pool != nil
	return m
}

func (m Model) currentPool() []mention.Mentionable {
	if m.hasPool {
		return m.pool
	}
	if m.cfg.Pool != nil {
		return m.cfg.Pool()
	}
	return nil
}

// SetText replaces the whole text as one undoable step. Mentions whose
// sentinels survive the replacement are kept.
func (m Model) SetText(text string) Model {
	if m.cfg.ReadOnly {
		return m
	}
	m.buf.Replace(text, len([]rune(text)))
	(&m).syncFromBuffer()
	return m
}

// Reset clears the text and mentions.
func (m Model) Reset() Model {
	m.eng.Reset()
	m.buf = buffer.New("", buffer.Options{HistoryLimit: m.cfg.HistoryLimit})
	m.buf.SetMeta(m.eng.Mentions())
	m.suggest = SuggestionState{}
	m.dismissed = dismissal{}
	m.markSynced()
	m.rebuildContent()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.suggest = SuggestionState{}
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		next, cmd := m.updateKey(msg)
		(&next).syncFromBuffer()
		return next, cmd
	case tea.MouseMsg:
		next, cmd := m.updateMouse(msg)
		(&next).syncFromBuffer()
		return next, cmd
	default:
		// Hosts may drive edits by mutating the buffer.
		(&m).syncFromBuffer()
		return m, nil
	}
}

func (m Model) View() string {
	base := m.viewport.View()
	if popup, ok := m.suggestionPopupRender(base); ok {
		return popup.View
	}
	return base
}

// syncFromBuffer feeds buffer changes to the engine, writes back engine
// rewrites, refreshes the popup and emits a change event.
//
// Each buffer text carries its mention list as buffer metadata, so undo and
// redo restore exactly the mentions that text had.
func (m *Model) syncFromBuffer() {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	if ver == m.lastBufVersion {
		return
	}
	text := m.buf.Text()
	cursor := m.buf.Cursor()

	switch {
	case m.fromHistory():
		mentions, ok := m.buf.Meta().([]mention.Mentionable)
		if ok && m.eng.Restore(text, cursor, mentions) == nil {
			m.log.Debug("mentions restored from history", "mentions", len(mentions))
		} else if m.eng.Sync(text, cursor) {
			m.writeBack()
		}
		m.suggest = SuggestionState{}
		m.dismissed = dismissal{}
		if m.cfg.OnCandidates != nil {
			m.cfg.OnCandidates(nil)
		}
	case m.buf.TextVersion() == m.lastTextVersion:
		m.applyCandidates(m.eng.Move(cursor, m.currentPool()))
	default:
		up := m.eng.Change(text, cursor, m.currentPool())
		if up.TextChanged {
			// Undo of the rewrite returns to the text as the user left it.
			m.buf.SetMeta(up.Synced)
			m.writeBack()
		}
		m.applyCandidates(up)
	}

	m.buf.SetMeta(m.eng.Mentions())
	m.afterEdit()
}

func (m *Model) fromHistory() bool {
	ch, ok := m.buf.LastChange()
	return ok && ch.Source == buffer.ChangeSourceHistory && ch.VersionAfter == m.buf.Version()
}

func (m *Model) writeBack() {
	m.buf.Replace(m.eng.Text(), m.eng.Cursor())
}

// afterEdit emits a change event and redraws.
func (m *Model) afterEdit() {
	if m.cfg.OnChange != nil {
		ev := buildChangeEvent(m.buf, m.eng)
		if ev.ExportErr != nil {
			m.log.Warn("export failed", "err", ev.ExportErr)
		}
		m.cfg.OnChange(ev)
	}
	m.markSynced()
	m.rebuildContent()
	m.followCursor()
}

func (m *Model) markSynced() {
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	row := m.layout.cursorRow
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}
