package model

import (
	"fmt"
	"strings"
)

// InstitutionType is the coarse classification inferred from the name or
// recorded in the verified database.
type InstitutionType string

const (
	TypeResearch   InstitutionType = "research_university"
	TypeTeaching   InstitutionType = "teaching_university"
	TypeCollege    InstitutionType = "college_polytechnic"
	TypeSpecialist InstitutionType = "specialist_school"
)

// Label returns a display form, e.g. "Research University".
func (t InstitutionType) Label() string {
	parts := strings.Split(string(t), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Valid reports whether t is one of the four known types.
func (t InstitutionType) Valid() bool {
	switch t {
	case TypeResearch, TypeTeaching, TypeCollege, TypeSpecialist:
		return true
	}
	return false
}

// ScopeLevel is the inferred reach of an institution.
type ScopeLevel string

const (
	ScopeGlobal   ScopeLevel = "global"
	ScopeNational ScopeLevel = "national"
	ScopeRegional ScopeLevel = "regional"
)

// InstitutionRecord is the unit of scoring input: either a verified entry
// loaded at startup, or a synthetic record built by the estimation engine.
// Records are immutable once constructed.
type InstitutionRecord struct {
	Key         string          `yaml:"key" json:"key"`
	DisplayName string          `yaml:"name" json:"name"`
	Aliases     []string        `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Country     string          `yaml:"country" json:"country"`
	Type        InstitutionType `yaml:"type" json:"type"`
	Scope       ScopeLevel      `yaml:"scope,omitempty" json:"scope,omitempty"`
	Scores      PillarValues    `yaml:"scores" json:"scores"`

	// ErrorMargins holds the per-pillar uncertainty half-widths. For
	// verified records these are the source spreads; for estimated records
	// they already include the data-quality and estimation-factor scaling.
	ErrorMargins PillarValues `yaml:"error_margins,omitempty" json:"error_margins"`

	// DataQuality is 1.0 for verified records and at most 0.3 for
	// estimated ones, keeping estimated uncertainty visibly larger.
	DataQuality float64  `yaml:"data_quality" json:"data_quality"`
	Sources     []string `yaml:"sources,omitempty" json:"sources,omitempty"`

	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Notes       map[string][]string `yaml:"notes,omitempty" json:"notes,omitempty"`

	// MatchedPatterns records which classifier rules fired for synthetic
	// records. Empty for verified entries.
	MatchedPatterns []string `yaml:"-" json:"matched_patterns,omitempty"`
}

// Estimated reports whether the record was synthesized rather than loaded
// from the verified database.
func (r *InstitutionRecord) Estimated() bool {
	return r.DataQuality < 1.0
}

// SourceQuality returns the source label for the record's pillar values.
func (r *InstitutionRecord) SourceQuality() SourceQuality {
	if !r.Estimated() {
		return SourceVerified
	}
	if len(r.MatchedPatterns) > 0 {
		return SourcePatternInferred
	}
	return SourceEstimated
}

// Validate checks record invariants before it enters the in-memory index.
func (r *InstitutionRecord) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("record has empty key")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("record %s: invalid type %q", r.Key, r.Type)
	}
	if r.DataQuality <= 0 || r.DataQuality > 1.0 {
		return fmt.Errorf("record %s: data_quality %.2f outside (0, 1]", r.Key, r.DataQuality)
	}
	if err := r.Scores.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", r.Key, err)
	}
	for _, p := range Pillars() {
		if r.ErrorMargins.Value(p) < 0 {
			return fmt.Errorf("record %s: negative error margin for %s", r.Key, p.Code())
		}
	}
	return nil
}

// NormalizeKey canonicalizes an institution name for lookup: lowercase,
// punctuation stripped, whitespace collapsed.
func NormalizeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
		// remaining punctuation is dropped
	}
	return strings.TrimSpace(b.String())
}
