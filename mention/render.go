package mention

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SegmentKind uint8

const (
	SegmentPlain SegmentKind = iota
	SegmentMention
)

// Segment is one piece of rendered text. Plain segments carry raw text;
// mention segments carry the mention and its display label in Text.
type Segment struct {
	Kind    SegmentKind
	Text    string
	Mention Mentionable
	Style   lipgloss.Style

	// Start is the rune offset of the segment in the raw text. A mention
	// segment always spans exactly one raw rune.
	Start int
}

// View returns the segment text rendered with its style.
func (s Segment) View() string {
	return s.Style.Render(s.Text)
}

type RenderOptions struct {
	Sentinel     rune
	BaseStyle    lipgloss.Style
	MentionStyle lipgloss.Style
}

// Render turns text into display segments, showing each sentinel as the full
// label of its mention. Empty plain runs are omitted.
func Render(text string, mentions []Mentionable, opt RenderOptions) ([]Segment, error) {
	aligned, err := Zip(SplitRuns(text, opt.Sentinel), mentions)
	if err != nil {
		return nil, err
	}

	out := make([]Segment, 0, len(aligned))
	for _, a := range aligned {
		if a.Mention != nil {
			out = append(out, Segment{
				Kind:    SegmentMention,
				Text:    a.Mention.FullLabel(),
				Mention: a.Mention,
				Style:   opt.MentionStyle,
				Start:   a.Run.Start,
			})
			continue
		}
		if a.Run.Text == "" {
			continue
		}
		out = append(out, Segment{
			Kind:  SegmentPlain,
			Text:  a.Run.Text,
			Style: opt.BaseStyle,
			Start: a.Run.Start,
		})
	}
	return out, nil
}

// JoinSegments renders segments and concatenates the result.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.View())
	}
	return sb.String()
}

// Export replaces each sentinel, left to right, with the export value of the
// next mention.
func Export(text string, mentions []Mentionable, sentinel rune) (string, error) {
	aligned, err := Zip(SplitRuns(text, sentinel), mentions)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, a := range aligned {
		if a.Mention != nil {
			sb.WriteString(a.Mention.ExportValue())
			continue
		}
		sb.WriteString(a.Run.Text)
	}
	return sb.String(), nil
}
