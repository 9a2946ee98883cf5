// Package classify infers institution type and scope from the name alone.
// It is a priority-ordered keyword matcher: no scraping, no external
// lookups, and identical input always yields identical output.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uniscore/uniscore/internal/model"
)

// Result is the outcome of classifying a single name.
type Result struct {
	Type  model.InstitutionType
	Scope model.ScopeLevel

	// MatchedPatterns lists every token that fired, sorted. More agreeing
	// patterns mean higher estimation confidence downstream.
	MatchedPatterns []string

	// TypeDefaulted / ScopeDefaulted are set when no rule matched and the
	// fallback was used. They feed the estimation factor.
	TypeDefaulted  bool
	ScopeDefaulted bool
}

// Classifier evaluates a RuleSet against normalized names.
type Classifier struct {
	rules *RuleSet
}

// NewClassifier builds a classifier from a validated rule set. Passing nil
// installs the default table.
func NewClassifier(rules *RuleSet) (*Classifier, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("classifier rules invalid: %w", err)
	}
	return &Classifier{rules: rules}, nil
}

// Classify infers type and scope for a raw institution name. The empty
// name is the only rejected input.
//
// Scope policy: a name with some matched pattern but no scope qualifier is
// treated as Global. Global-as-default is a deliberate policy choice (the
// absence of a qualifier correlates with internationally known names in
// the seed data), not a factual claim. A name matching nothing at all
// falls back to Teaching/National, the most common real-world combination.
func (c *Classifier) Classify(name string) (Result, error) {
	key := model.NormalizeKey(name)
	if key == "" {
		return Result{}, fmt.Errorf("institution name is empty")
	}

	matched := map[string]struct{}{}

	typ, typeOK := c.matchType(key, matched)
	scope, scopeOK := c.matchScope(key, matched)

	res := Result{
		Type:           typ,
		Scope:          scope,
		TypeDefaulted:  !typeOK,
		ScopeDefaulted: !scopeOK,
	}

	if !typeOK {
		res.Type = model.TypeTeaching
	}
	switch {
	case scopeOK:
	case typeOK:
		res.Scope = model.ScopeGlobal
	default:
		res.Scope = model.ScopeNational
	}

	res.MatchedPatterns = make([]string, 0, len(matched))
	for tok := range matched {
		res.MatchedPatterns = append(res.MatchedPatterns, tok)
	}
	sort.Strings(res.MatchedPatterns)

	return res, nil
}

func (c *Classifier) matchType(key string, matched map[string]struct{}) (model.InstitutionType, bool) {
	var (
		found bool
		typ   model.InstitutionType
	)
	for _, rule := range c.rules.TypeRules {
		if rule.RequireToken != "" && !strings.Contains(key, rule.RequireToken) {
			continue
		}
		for _, tok := range rule.Tokens {
			if strings.Contains(key, tok) {
				matched[tok] = struct{}{}
				if !found {
					typ = rule.Type
					found = true
				}
				// keep collecting tokens from the winning rule only
			}
		}
		if found {
			if rule.RequireToken != "" {
				matched[rule.RequireToken] = struct{}{}
			}
			return typ, true
		}
	}
	return "", false
}

func (c *Classifier) matchScope(key string, matched map[string]struct{}) (model.ScopeLevel, bool) {
	for _, rule := range c.rules.ScopeRules {
		for _, tok := range rule.Tokens {
			if strings.Contains(key, tok) {
				matched[tok] = struct{}{}
				return rule.Scope, true
			}
		}
	}
	return "", false
}
