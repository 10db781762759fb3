package editor

import (
	"log/slog"

	"github.com/iw2rmb/atmention/mention"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer. Sentinel runes are dropped.
	Text string

	// Pool supplies the candidate pool on every change. Model.SetPool
	// overrides it with a fixed pool.
	Pool func() []mention.Mentionable

	// Mention engine settings, see mention.Config.
	Sentinel     rune
	Trigger      rune
	CommitPolicy mention.CommitPolicy

	Style  Style
	KeyMap KeyMap

	SuggestionKeyMap         SuggestionKeyMap
	SuggestionMaxVisibleRows int
	SuggestionMaxWidth       int

	// Forwarded to buffer.Options.
	HistoryLimit int

	// ReadOnly disables all mutations. Cursor movement still works.
	ReadOnly bool

	Clipboard Clipboard

	// OnChange fires after every effective text or cursor change.
	OnChange func(ChangeEvent)
	// OnCandidates receives the suggestion list whenever it is recomputed;
	// an empty list means suggestions are hidden.
	OnCandidates func([]mention.Mentionable)

	Logger *slog.Logger
}

func normalizeConfig(cfg Config) Config {
	cfg.Style = normalizeStyle(cfg.Style)
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.SuggestionKeyMap = normalizeSuggestionKeyMap(cfg.SuggestionKeyMap)
	cfg.SuggestionMaxVisibleRows = normalizeSuggestionMaxVisibleRows(cfg.SuggestionMaxVisibleRows)
	cfg.SuggestionMaxWidth = normalizeSuggestionMaxWidth(cfg.SuggestionMaxWidth)
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

func (cfg Config) mentionConfig() mention.Config {
	return mention.Config{
		Text:         cfg.Text,
		Sentinel:     cfg.Sentinel,
		Trigger:      cfg.Trigger,
		MentionStyle: cfg.Style.Mention,
		BaseStyle:    cfg.Style.Text,
		CommitPolicy: cfg.CommitPolicy,
		Logger:       cfg.Logger,
	}
}
