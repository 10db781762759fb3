package mention

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEntityLabels(t *testing.T) {
	e := Entity{ID: "jd", Name: "John", Display: "John Doe"}
	require.Equal(t, "John", e.Label())
	require.Equal(t, "John Doe", e.FullLabel())
	require.Equal(t, "@jd", e.ExportValue())

	bare := Entity{Name: "Mary"}
	require.Equal(t, "Mary", bare.FullLabel())
	require.Equal(t, "@Mary", bare.ExportValue())

	custom := Entity{ID: "x", Name: "X", Value: "<@U123>"}
	require.Equal(t, "<@U123>", custom.ExportValue())
}

func TestEntityMatchers(t *testing.T) {
	cases := []struct {
		name  string
		e     Entity
		query string
		want  bool
	}{
		{"substring middle", Entity{Name: "Jordan"}, "rda", true},
		{"substring case", Entity{Name: "Jordan"}, "JOR", true},
		{"substring miss", Entity{Name: "Jordan"}, "jdn", false},
		{"substring alias", Entity{Name: "Robert", Aliases: []string{"Bob"}}, "bo", true},
		{"prefix hit", Entity{Name: "Jordan", Match: MatchPrefix}, "jo", true},
		{"prefix miss", Entity{Name: "Jordan", Match: MatchPrefix}, "rda", false},
		{"prefix alias", Entity{Name: "Robert", Aliases: []string{"Bob"}, Match: MatchPrefix}, "Bo", true},
		{"fuzzy in order", Entity{Name: "Jordan", Match: MatchFuzzy}, "jdn", true},
		{"fuzzy out of order", Entity{Name: "Jordan", Match: MatchFuzzy}, "ndj", false},
		{"fuzzy alias", Entity{Name: "Robert", Aliases: []string{"Bobby"}, Match: MatchFuzzy}, "bby", true},
		{"hangul", Entity{Name: "민수"}, "민", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.e.Matches(tc.query))
		})
	}
}

func TestFuzzyEntityResolves(t *testing.T) {
	pool := Pool(
		Entity{Name: "Jordan", Match: MatchFuzzy},
		Entity{Name: "Jane", Match: MatchFuzzy},
	)
	res := Resolve("@jdn", pool, '@')
	require.Equal(t, ActionShow, res.Action)
	require.Equal(t, []string{"Jordan"}, labels(res.Matches))
}

func TestParseMatcher(t *testing.T) {
	for in, want := range map[string]Matcher{
		"":          MatchSubstring,
		"substring": MatchSubstring,
		"Prefix":    MatchPrefix,
		" fuzzy ":   MatchFuzzy,
	} {
		got, err := ParseMatcher(in)
		require.NoError(t, err)
		require.Equal(t, want, got, "input %q", in)
	}
	_, err := ParseMatcher("regex")
	require.Error(t, err)
}

func TestDecodeEntities(t *testing.T) {
	data := []byte(`
- id: jdoe
  name: John
  display: John Doe
  aliases: [johnny]
  match: prefix
- name: Mary
  export: "<@mary>"
- name: Jordan
  match: fuzzy
`)
	got, err := DecodeEntities(data)
	require.NoError(t, err)
	require.Equal(t, []Entity{
		{ID: "jdoe", Name: "John", Display: "John Doe", Aliases: []string{"johnny"}, Match: MatchPrefix},
		{Name: "Mary", Value: "<@mary>"},
		{Name: "Jordan", Match: MatchFuzzy},
	}, got)
}

func TestDecodeEntitiesErrors(t *testing.T) {
	_, err := DecodeEntities([]byte("- id: x\n"))
	require.ErrorContains(t, err, "entry 0 has no name")

	_, err = DecodeEntities([]byte("- name: x\n  match: regex\n"))
	require.ErrorContains(t, err, "unknown matcher")

	_, err = DecodeEntities([]byte("{not a list"))
	require.Error(t, err)
}

func TestMatcherMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(Entity{Name: "Jo", Match: MatchFuzzy})
	require.NoError(t, err)
	require.Contains(t, string(out), "match: fuzzy")
}
