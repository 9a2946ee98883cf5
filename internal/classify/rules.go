package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uniscore/uniscore/internal/model"
)

// TypeRule maps a set of name tokens to an institution type. Rules are
// evaluated in slice order and the first rule with a matching token wins,
// so overlapping keywords ("state university" matching both a research
// indicator and the generic university rule) resolve deterministically.
type TypeRule struct {
	Type   model.InstitutionType `yaml:"type"`
	Tokens []string              `yaml:"tokens"`

	// RequireToken, when set, limits the rule to names that also contain
	// this token. Used for research indicators that only apply to
	// universities.
	RequireToken string `yaml:"require_token,omitempty"`
}

// ScopeRule maps name tokens to a scope level. Same first-match semantics
// as TypeRule.
type ScopeRule struct {
	Scope  model.ScopeLevel `yaml:"scope"`
	Tokens []string         `yaml:"tokens"`
}

// RuleSet is the full pattern table consumed by the classifier.
type RuleSet struct {
	TypeRules  []TypeRule  `yaml:"type_rules"`
	ScopeRules []ScopeRule `yaml:"scope_rules"`
}

// Validate checks the rule table before it is installed.
func (rs *RuleSet) Validate() error {
	if len(rs.TypeRules) == 0 {
		return fmt.Errorf("rule set has no type rules")
	}
	for i, r := range rs.TypeRules {
		if !r.Type.Valid() {
			return fmt.Errorf("type rule %d: invalid type %q", i, r.Type)
		}
		if len(r.Tokens) == 0 {
			return fmt.Errorf("type rule %d (%s): no tokens", i, r.Type)
		}
	}
	for i, r := range rs.ScopeRules {
		switch r.Scope {
		case model.ScopeGlobal, model.ScopeNational, model.ScopeRegional:
		default:
			return fmt.Errorf("scope rule %d: invalid scope %q", i, r.Scope)
		}
		if len(r.Tokens) == 0 {
			return fmt.Errorf("scope rule %d (%s): no tokens", i, r.Scope)
		}
	}
	return nil
}

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern rules %s: %w", path, err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse pattern rules: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("pattern rule validation failed: %w", err)
	}
	return &rs, nil
}

// DefaultRules returns the built-in pattern table. Tie-break order is
// Specialist > College/Polytechnic > Research > Teaching; narrower
// patterns sit above broader ones within each group so that
// "community college" wins over "college".
func DefaultRules() *RuleSet {
	return &RuleSet{
		TypeRules: []TypeRule{
			{
				Type: model.TypeSpecialist,
				Tokens: []string{
					"school of medicine", "medical school", "business school",
					"law school", "dental school", "nursing school",
					"art school", "conservatory", "school of music",
					"school of design",
				},
			},
			{
				Type: model.TypeCollege,
				Tokens: []string{
					"community college", "technical college", "vocational college",
					"career college", "institute of technology", "polytechnic",
					"college",
				},
			},
			{
				Type:         model.TypeResearch,
				RequireToken: "university",
				Tokens: []string{
					"research", "institute", "tech", "state", "national", "federal",
				},
			},
			{
				Type:   model.TypeTeaching,
				Tokens: []string{"university"},
			},
		},
		ScopeRules: []ScopeRule{
			{
				Scope:  model.ScopeNational,
				Tokens: []string{"national", "state", "royal", "federal"},
			},
			{
				Scope: model.ScopeRegional,
				Tokens: []string{
					"community", "municipal", "metropolitan", "county",
					"regional", "district",
				},
			},
		},
	}
}
