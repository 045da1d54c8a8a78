package patterns

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRule is returned when an override rule cannot be compiled.
var ErrInvalidRule = errors.New("invalid pattern rule")

// RuleFile is one rule in a pattern override file.
type RuleFile struct {
	Pattern string `yaml:"pattern"`
	Weight  int    `yaml:"weight"`
}

// GroupFile is one named group in a pattern override file.
type GroupFile struct {
	Name  string     `yaml:"name"`
	Rules []RuleFile `yaml:"rules"`
}

// Overrides adds extra groups on top of the compiled-in catalogs. Overrides
// never remove or reweight built-in rules.
type Overrides struct {
	Educational []GroupFile `yaml:"educational"`
	Distracting []GroupFile `yaml:"distracting"`
}

// LoadOverrides reads a YAML override file. An empty path yields empty
// overrides.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	clean := strings.TrimSpace(path)
	if clean == "" {
		return o, nil
	}
	data, err := os.ReadFile(filepath.Clean(clean))
	if err != nil {
		return o, fmt.Errorf("read pattern overrides: %w", err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("parse pattern overrides: %w", err)
	}
	return o, nil
}

// Apply compiles the override groups and returns new catalogs extending
// edu and dist.
func (o Overrides) Apply(edu, dist Catalog) (Catalog, Catalog, error) {
	eduExtra, err := compileGroups(o.Educational)
	if err != nil {
		return edu, dist, fmt.Errorf("educational overrides: %w", err)
	}
	distExtra, err := compileGroups(o.Distracting)
	if err != nil {
		return edu, dist, fmt.Errorf("distracting overrides: %w", err)
	}
	return edu.With(eduExtra...), dist.With(distExtra...), nil
}

// Empty reports whether the overrides add nothing.
func (o Overrides) Empty() bool {
	return len(o.Educational) == 0 && len(o.Distracting) == 0
}

func compileGroups(files []GroupFile) ([]Group, error) {
	groups := make([]Group, 0, len(files))
	for _, gf := range files {
		name := strings.TrimSpace(gf.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: group without a name", ErrInvalidRule)
		}
		g := Group{Name: name}
		for i, rf := range gf.Rules {
			if rf.Weight <= 0 {
				return nil, fmt.Errorf("%w: %s[%d]: weight must be positive, got %d", ErrInvalidRule, name, i, rf.Weight)
			}
			expr := rf.Pattern
			if !strings.HasPrefix(expr, "(?") {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidRule, name, i, err)
			}
			g.Rules = append(g.Rules, Rule{Pattern: re, Weight: rf.Weight})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
