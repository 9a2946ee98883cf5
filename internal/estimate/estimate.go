// Package estimate synthesizes institution records for names absent from
// the verified database. Estimation is fully deterministic: identical
// inputs always produce identical records, and the ± spreads in the base
// tables are surfaced as error margins rather than sampled.
package estimate

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uniscore/uniscore/internal/classify"
	"github.com/uniscore/uniscore/internal/model"
)

const (
	// MaxDataQuality caps estimated records well below verified ones so
	// their error margins stay visibly larger.
	MaxDataQuality = 0.3
	minDataQuality = 0.1
)

// Engine turns classifier output into a synthetic InstitutionRecord.
type Engine struct{}

// NewEngine returns an estimation engine. The base tables are compiled in.
func NewEngine() *Engine {
	return &Engine{}
}

// Estimate builds a synthetic record for an unverified institution.
// Country multipliers are not applied here; the composite scorer owns all
// adjustment stages so each one is applied exactly once and traceable.
func (e *Engine) Estimate(name, countryName string, cls classify.Result) (model.InstitutionRecord, error) {
	key := model.NormalizeKey(name)
	if key == "" {
		return model.InstitutionRecord{}, fmt.Errorf("institution name is empty")
	}

	profile, patternSource := e.baseProfile(key, cls.Type)

	scores := profile.Scores
	if bias, ok := scopeBias[cls.Scope]; ok {
		scores.Visibility = clampPillar(model.PillarVisibility, scores.Visibility+bias.Visibility)
		scores.Transparency = clampPillar(model.PillarTransparency, scores.Transparency+bias.Transparency)
	}

	quality := dataQuality(cls)
	factor := estimationFactor(cls)

	var margins model.PillarValues
	for _, p := range model.Pillars() {
		margins.Set(p, profile.Spreads.Value(p)*(1.0/quality)*factor)
	}

	rec := model.InstitutionRecord{
		Key:             key,
		DisplayName:     strings.TrimSpace(name),
		Country:         countryName,
		Type:            cls.Type,
		Scope:           cls.Scope,
		Scores:          scores,
		ErrorMargins:    margins,
		DataQuality:     quality,
		MatchedPatterns: cls.MatchedPatterns,
		Sources: []string{
			"Pattern analysis of similar institutions",
			"Country education system benchmarks",
			"Institution type averages",
		},
	}
	if patternSource != "" {
		rec.Description = fmt.Sprintf("Estimated from %q name pattern", patternSource)
	} else {
		rec.Description = fmt.Sprintf("Estimated from institution type %s", cls.Type.Label())
	}

	log.Debug().
		Str("institution", key).
		Str("type", string(cls.Type)).
		Str("scope", string(cls.Scope)).
		Float64("data_quality", quality).
		Float64("estimation_factor", factor).
		Msg("estimated institution record")

	return rec, nil
}

// baseProfile picks the pattern-specific profile when one matches,
// otherwise the type profile. Returns the pattern that fired, if any.
func (e *Engine) baseProfile(key string, typ model.InstitutionType) (BaseProfile, string) {
	for _, pp := range patternProfiles {
		if strings.Contains(key, pp.Pattern) {
			return pp.Profile, pp.Pattern
		}
	}
	if p, ok := typeProfiles[typ]; ok {
		return p, ""
	}
	return typeProfiles[model.TypeTeaching], ""
}

// dataQuality grows with the number of agreeing patterns but never reaches
// verified territory: 0.10 with no matches, +0.05 per match, capped at 0.30.
func dataQuality(cls classify.Result) float64 {
	matches := len(cls.MatchedPatterns)
	if matches > 4 {
		matches = 4
	}
	q := minDataQuality + 0.05*float64(matches)
	if q > MaxDataQuality {
		q = MaxDataQuality
	}
	return q
}

// estimationFactor widens margins when classification fell back to
// defaults and narrows them when several independent patterns agree.
func estimationFactor(cls classify.Result) float64 {
	f := 1.0
	if cls.TypeDefaulted {
		f += 0.25
	}
	if cls.ScopeDefaulted {
		f += 0.25
	}
	if n := len(cls.MatchedPatterns); n > 1 {
		f -= 0.05 * float64(n-1)
	}
	if f < 0.6 {
		f = 0.6
	}
	if f > 1.5 {
		f = 1.5
	}
	return f
}

func clampPillar(p model.Pillar, v float64) float64 {
	if v < 0 {
		return 0
	}
	if max := p.Max(); v > max {
		return max
	}
	return v
}
