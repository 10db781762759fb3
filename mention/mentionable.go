package mention

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// Mentionable is an entity that can be resolved from a query and stored as a
// mention. Implementations are supplied by the host and must be immutable.
type Mentionable interface {
	// Label is the short name queries are compared against.
	Label() string
	// FullLabel is what a rendered mention displays. It may be longer than
	// Label.
	FullLabel() string
	// Matches reports whether query (trigger already stripped) selects the
	// entity.
	Matches(query string) bool
	// ExportValue is the serialized form written by Export.
	ExportValue() string
}

// Matcher selects how an Entity tests queries.
type Matcher uint8

const (
	// MatchSubstring accepts queries contained in the name or an alias,
	// ignoring case.
	MatchSubstring Matcher = iota
	// MatchPrefix accepts queries the name or an alias starts with, ignoring
	// case.
	MatchPrefix
	// MatchFuzzy accepts queries whose characters appear in order in the name
	// or an alias.
	MatchFuzzy
)

func (m Matcher) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchPrefix:
		return "prefix"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("Matcher(%d)", uint8(m))
	}
}

// ParseMatcher accepts the String forms of Matcher. The empty string selects
// MatchSubstring.
func ParseMatcher(s string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "prefix":
		return MatchPrefix, nil
	case "fuzzy":
		return MatchFuzzy, nil
	default:
		return MatchSubstring, fmt.Errorf("unknown matcher %q", s)
	}
}

func (m *Matcher) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMatcher(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = parsed
	return nil
}

func (m Matcher) MarshalYAML() (any, error) {
	return m.String(), nil
}

// Entity is a ready-made Mentionable.
type Entity struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Display string   `yaml:"display,omitempty"` // default: Name
	Aliases []string `yaml:"aliases,omitempty"`
	Value   string   `yaml:"export,omitempty"` // default: "@" + ID, or "@" + Name
	Match   Matcher  `yaml:"match,omitempty"`
}

var _ Mentionable = Entity{}

func (e Entity) Label() string { return e.Name }

func (e Entity) FullLabel() string {
	if e.Display != "" {
		return e.Display
	}
	return e.Name
}

func (e Entity) ExportValue() string {
	switch {
	case e.Value != "":
		return e.Value
	case e.ID != "":
		return "@" + e.ID
	default:
		return "@" + e.Name
	}
}

func (e Entity) Matches(query string) bool {
	q := strings.ToLower(query)
	names := e.names()
	if e.Match == MatchFuzzy {
		return len(fuzzy.Find(q, names)) > 0
	}
	for _, name := range names {
		switch e.Match {
		case MatchPrefix:
			if strings.HasPrefix(name, q) {
				return true
			}
		default:
			if strings.Contains(name, q) {
				return true
			}
		}
	}
	return false
}

func (e Entity) names() []string {
	out := make([]string, 0, 1+len(e.Aliases))
	if e.Name != "" {
		out = append(out, strings.ToLower(e.Name))
	}
	for _, a := range e.Aliases {
		if a == "" {
			continue
		}
		out = append(out, strings.ToLower(a))
	}
	return out
}

// Pool converts entities to the slice type Engine.Change consumes.
func Pool(entities ...Entity) []Mentionable {
	out := make([]Mentionable, len(entities))
	for i, e := range entities {
		out[i] = e
	}
	return out
}

// DecodeEntities reads a YAML list of entities.
//
//	- id: jdoe
//	  name: John
//	  display: John Doe
//	  aliases: [johnny]
//	  match: prefix
func DecodeEntities(data []byte) ([]Entity, error) {
	var out []Entity
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	for i, e := range out {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("decode entities: entry %d has no name", i)
		}
	}
	return out, nil
}
