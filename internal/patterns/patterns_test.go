package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupWeights(c Catalog) map[string][]int {
	out := make(map[string][]int)
	for _, g := range c.Groups {
		for _, r := range g.Rules {
			out[g.Name] = append(out[g.Name], r.Weight)
		}
	}
	return out
}

func TestEducationalCatalogWeights(t *testing.T) {
	want := map[string][]int{
		"strong":    {5, 4, 4, 3, 3},
		"subject":   {4, 4, 3, 3},
		"platforms": {5, 5},
	}
	if diff := cmp.Diff(want, groupWeights(Educational())); diff != "" {
		t.Errorf("educational weights mismatch (-want +got):\n%s", diff)
	}
}

func TestDistractingCatalogWeights(t *testing.T) {
	want := map[string][]int{
		"strong":        {5, 4, 4, 3},
		"social":        {4, 3},
		"entertainment": {3, 2},
		"gaming":        {3, 3},
	}
	if diff := cmp.Diff(want, groupWeights(Distracting())); diff != "" {
		t.Errorf("distracting weights mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogGroupOrder(t *testing.T) {
	var names []string
	for _, g := range Distracting().Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"strong", "social", "entertainment", "gaming"}, names)
}

func TestScore_RuleCountedOnce(t *testing.T) {
	edu := Educational()
	// "calculus" matches the math rule in both texts; weight counts once.
	got := edu.Score("calculus", "calculus")
	if got != 4 {
		t.Errorf("Score = %d, want 4", got)
	}
}

func TestScore_AnyText(t *testing.T) {
	edu := Educational()
	// Platform only present in the second text.
	got := edu.Score("", "khan academy")
	// academy (strong, 3) + khan academy (platforms, 5)
	if got != 8 {
		t.Errorf("Score = %d, want 8", got)
	}
}

func TestScore_WordBoundaries(t *testing.T) {
	dist := Distracting()
	tests := []struct {
		text string
		want int
	}{
		{"funny cats", 5},
		{"funniest vines", 0},
		{"remit payment", 0},
		{"let's play minecraft", 3},
		{"e-sports finals", 3},
		{"", 0},
	}
	for _, tt := range tests {
		if got := dist.Score(tt.text); got != tt.want {
			t.Errorf("Score(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestScore_StartAnchor(t *testing.T) {
	edu := Educational()
	g, ok := edu.Group(GroupStrong)
	require.True(t, ok)
	anchored := g.Rules[0].Pattern

	assert.True(t, anchored.MatchString("tutorials for everyone"))
	assert.True(t, anchored.MatchString("How To bake"))
	assert.False(t, anchored.MatchString("the best tutorial"))
}

func TestMatches_ListsGroups(t *testing.T) {
	got := Distracting().Matches("prank compilation")
	require.Len(t, got, 2)
	assert.Equal(t, "strong", got[0].Group)
	assert.Equal(t, 4, got[0].Weight)
	assert.Equal(t, 4, got[1].Weight)
}

func TestRuleCount(t *testing.T) {
	assert.Equal(t, 11, Educational().RuleCount())
	assert.Equal(t, 10, Distracting().RuleCount())
}

func TestWith_DoesNotMutate(t *testing.T) {
	base := Educational()
	before := len(base.Groups)
	extended := base.With(Group{Name: "extra"})
	assert.Len(t, extended.Groups, before+1)
	assert.Len(t, Educational().Groups, before)
}

func TestLoadOverrides_EmptyPath(t *testing.T) {
	o, err := LoadOverrides("")
	require.NoError(t, err)
	assert.True(t, o.Empty())
}

func TestLoadOverrides_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `
educational:
  - name: languages
    rules:
      - pattern: '\b(spanish|french|japanese)\b'
        weight: 3
distracting:
  - name: sports
    rules:
      - pattern: '\b(goals|dunks)\b'
        weight: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	o, err := LoadOverrides(path)
	require.NoError(t, err)

	edu, dist, err := o.Apply(Educational(), Distracting())
	require.NoError(t, err)

	assert.Equal(t, 3, edu.Score("Learn FRENCH fast")-Educational().Score("Learn FRENCH fast"))
	assert.Equal(t, 2, dist.Score("best dunks"))
	_, ok := dist.Group("sports")
	assert.True(t, ok)
}

func TestOverrides_RejectsBadWeight(t *testing.T) {
	o := Overrides{Educational: []GroupFile{{
		Name:  "bad",
		Rules: []RuleFile{{Pattern: "x", Weight: 0}},
	}}}
	_, _, err := o.Apply(Educational(), Distracting())
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestOverrides_RejectsBadRegex(t *testing.T) {
	o := Overrides{Distracting: []GroupFile{{
		Name:  "bad",
		Rules: []RuleFile{{Pattern: "(unclosed", Weight: 1}},
	}}}
	_, _, err := o.Apply(Educational(), Distracting())
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
