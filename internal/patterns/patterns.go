// Package patterns holds the weighted text patterns used to score videos as
// educational or distracting. Catalogs are built once and never mutated, so
// they can be shared freely between goroutines.
package patterns

import (
	"fmt"
	"regexp"
)

// Rule is a single weighted matcher.
type Rule struct {
	Pattern *regexp.Regexp
	Weight  int
}

// Group is a named set of rules within a catalog (e.g. "strong", "gaming").
type Group struct {
	Name  string
	Rules []Rule
}

// Catalog is an ordered collection of groups. Group order does not affect
// scoring; every group is summed.
type Catalog struct {
	Name   string
	Groups []Group
}

// Match describes one rule that matched during scoring.
type Match struct {
	Group   string
	Pattern string
	Weight  int
}

// ruleSpec is the declarative form of a Rule before compilation.
type ruleSpec struct {
	pattern string
	weight  int
}

type groupSpec struct {
	name  string
	rules []ruleSpec
}

// wordGroup builds a case-insensitive, word-bounded alternation.
func wordGroup(alternation string) string {
	return `(?i)\b(` + alternation + `)\b`
}

func compileCatalog(name string, groups []groupSpec) Catalog {
	c := Catalog{Name: name, Groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		rules := make([]Rule, 0, len(g.rules))
		for _, r := range g.rules {
			rules = append(rules, Rule{Pattern: regexp.MustCompile(r.pattern), Weight: r.weight})
		}
		c.Groups = append(c.Groups, Group{Name: g.name, Rules: rules})
	}
	return c
}

// Score sums the weights of every rule that matches at least one of texts.
// A rule contributes its weight once no matter how many texts it matches.
func (c Catalog) Score(texts ...string) int {
	score := 0
	for _, g := range c.Groups {
		for _, r := range g.Rules {
			if matchesAny(r.Pattern, texts) {
				score += r.Weight
			}
		}
	}
	return score
}

// Matches lists the rules that match at least one of texts, in catalog order.
func (c Catalog) Matches(texts ...string) []Match {
	var out []Match
	for _, g := range c.Groups {
		for _, r := range g.Rules {
			if matchesAny(r.Pattern, texts) {
				out = append(out, Match{Group: g.Name, Pattern: r.Pattern.String(), Weight: r.Weight})
			}
		}
	}
	return out
}

// Group returns the named group, if present.
func (c Catalog) Group(name string) (Group, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// RuleCount returns the total number of rules across all groups.
func (c Catalog) RuleCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Rules)
	}
	return n
}

// With returns a new catalog with extra groups appended. The receiver is
// left untouched.
func (c Catalog) With(extra ...Group) Catalog {
	groups := make([]Group, 0, len(c.Groups)+len(extra))
	groups = append(groups, c.Groups...)
	groups = append(groups, extra...)
	return Catalog{Name: c.Name, Groups: groups}
}

func matchesAny(re *regexp.Regexp, texts []string) bool {
	for _, t := range texts {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

func (m Match) String() string {
	return fmt.Sprintf("%s %s (+%d)", m.Group, m.Pattern, m.Weight)
}
