package mention

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultSentinel is a private-use code point that no keyboard layout emits.
	DefaultSentinel = '\uE000'
	DefaultTrigger  = '@'
)

// CommitPolicy selects how a commit splices the candidate out of the text.
type CommitPolicy uint8

const (
	// CommitSpan replaces only the candidate span that ends at the cursor.
	CommitSpan CommitPolicy = iota
	// CommitReplaceAll replaces every occurrence of the candidate text. Each
	// replaced occurrence becomes its own mention of the committed entity.
	CommitReplaceAll
)

func (p CommitPolicy) String() string {
	switch p {
	case CommitSpan:
		return "span"
	case CommitReplaceAll:
		return "replace-all"
	default:
		return fmt.Sprintf("CommitPolicy(%d)", uint8(p))
	}
}

// ParseCommitPolicy accepts the String forms of CommitPolicy.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch s {
	case "", "span":
		return CommitSpan, nil
	case "replace-all":
		return CommitReplaceAll, nil
	default:
		return CommitSpan, fmt.Errorf("unknown commit policy %q", s)
	}
}

// Config configures an Engine. It is copied at construction and exposed
// read-only through Engine.Config.
type Config struct {
	// Text seeds the engine. Sentinel runes in it are dropped since they
	// have no mention to pair with.
	Text string

	Sentinel rune // default: DefaultSentinel
	Trigger  rune // default: DefaultTrigger

	// MentionStyle renders mention labels (default: bold). BaseStyle renders
	// everything else.
	MentionStyle lipgloss.Style
	BaseStyle    lipgloss.Style

	CommitPolicy CommitPolicy

	// OnCandidates receives the suggestion list whenever it should update.
	// An empty list means "hide suggestions".
	OnCandidates func([]Mentionable)

	Logger *slog.Logger
}

// Validate reports configurations that cannot work.
func (c Config) Validate() error {
	switch c.CommitPolicy {
	case CommitSpan, CommitReplaceAll:
	default:
		return fmt.Errorf("unknown commit policy %v", c.CommitPolicy)
	}
	c = normalizeConfig(c)
	if c.Sentinel == c.Trigger {
		return fmt.Errorf("sentinel and trigger must differ (both %q)", c.Trigger)
	}
	if isQueryRune(c.Sentinel) {
		return fmt.Errorf("sentinel %q collides with query characters", c.Sentinel)
	}
	return nil
}

func DefaultMentionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func normalizeConfig(c Config) Config {
	if c.Sentinel == 0 {
		c.Sentinel = DefaultSentinel
	}
	if c.Trigger == 0 {
		c.Trigger = DefaultTrigger
	}
	if reflect.DeepEqual(c.MentionStyle, lipgloss.Style{}) {
		c.MentionStyle = DefaultMentionStyle()
	}
	if reflect.DeepEqual(c.BaseStyle, lipgloss.Style{}) {
		c.BaseStyle = lipgloss.NewStyle()
	}
	switch c.CommitPolicy {
	case CommitSpan, CommitReplaceAll:
	default:
		c.CommitPolicy = CommitSpan
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
