// Package explain turns scoring computations into human-readable
// rationale. The generator is pure and deterministic; every adjustment
// the scorer applied to a pillar appears in that pillar's entry.
package explain

import (
	"fmt"
	"strings"

	"github.com/uniscore/uniscore/internal/country"
	"github.com/uniscore/uniscore/internal/model"
	"github.com/uniscore/uniscore/internal/scoring"
)

// RationaleEntry explains one pillar of a scoring result.
type RationaleEntry struct {
	Pillar      string   `json:"pillar"`
	Name        string   `json:"name"`
	Raw         float64  `json:"raw"`
	Adjusted    float64  `json:"adjusted"`
	Max         float64  `json:"max"`
	ErrorMargin float64  `json:"error_margin"`
	Source      string   `json:"source"`
	Factors     []string `json:"factors"`
	Sentence    string   `json:"sentence"`
}

// Generator builds rationale entries from pillar computations.
type Generator struct{}

// NewGenerator returns a rationale generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Explain emits one entry per pillar, in breakdown order.
func (g *Generator) Explain(
	comps []scoring.PillarComputation,
	record *model.InstitutionRecord,
	profile country.Profile,
) []RationaleEntry {
	entries := make([]RationaleEntry, 0, len(comps))
	for _, pc := range comps {
		entries = append(entries, g.explainPillar(pc, record, profile))
	}
	return entries
}

func (g *Generator) explainPillar(
	pc scoring.PillarComputation,
	record *model.InstitutionRecord,
	profile country.Profile,
) RationaleEntry {
	entry := RationaleEntry{
		Pillar:      pc.Pillar.Code(),
		Name:        pc.Pillar.Name(),
		Raw:         pc.Raw,
		Adjusted:    pc.Adjusted,
		Max:         pc.Pillar.Max(),
		ErrorMargin: pc.ErrorMargin,
		Source:      string(pc.Source),
	}

	entry.Factors = append(entry.Factors, g.sourceFactor(pc, record))
	for _, adj := range pc.Adjustments {
		entry.Factors = append(entry.Factors, g.adjustmentFactor(adj, profile, record))
	}

	entry.Sentence = g.sentence(pc, record, entry.Factors)
	return entry
}

// sourceFactor names where the raw value came from; every entry carries
// at least this factor.
func (g *Generator) sourceFactor(pc scoring.PillarComputation, record *model.InstitutionRecord) string {
	switch pc.Source {
	case model.SourceVerified:
		if len(record.Sources) > 0 {
			return fmt.Sprintf("verified record (%s)", record.Sources[0])
		}
		return "verified record"
	case model.SourcePatternInferred:
		return fmt.Sprintf("name pattern match (%s)", strings.Join(record.MatchedPatterns, ", "))
	default:
		return fmt.Sprintf("type-based estimate (%s)", record.Type.Label())
	}
}

func (g *Generator) adjustmentFactor(adj scoring.Adjustment, profile country.Profile, record *model.InstitutionRecord) string {
	switch adj.Stage {
	case scoring.StageCountryMultiplier:
		return fmt.Sprintf("country multiplier %.2fx (%s)", adj.Factor, profile.Key)
	case scoring.StageTypeAdjustment:
		return fmt.Sprintf("type adjustment %.2fx (%s)", adj.Factor, record.Type.Label())
	case scoring.StageClamp:
		return "clamped to pillar maximum"
	default:
		return adj.Stage
	}
}

// sentence builds the one-line justification: performance band, then the
// applied factors in order.
func (g *Generator) sentence(pc scoring.PillarComputation, record *model.InstitutionRecord, factors []string) string {
	pct := 0.0
	if max := pc.Pillar.Max(); max > 0 {
		pct = pc.Adjusted / max * 100
	}

	var band string
	switch {
	case pct >= 80:
		band = "Excellent"
	case pct >= 60:
		band = "Good"
	case pct >= 40:
		band = "Average"
	default:
		band = "Below average"
	}

	s := fmt.Sprintf("%s %s (%.1f/%.0f, %.0f%% of max) based on %s",
		band, strings.ToLower(pc.Pillar.Name()), pc.Adjusted, pc.Pillar.Max(), pct,
		strings.Join(factors, "; "))

	if notes, ok := record.Notes[pc.Pillar.Code()]; ok && len(notes) > 0 {
		s += " (" + notes[0] + ")"
	}
	return s + "."
}

// Strengths lists pillars at 80% of max or above after adjustment.
func Strengths(comps []scoring.PillarComputation) []string {
	return pillarsInBand(comps, func(pct float64) bool { return pct >= 80 })
}

// Improvements lists pillars below 60% of max after adjustment.
func Improvements(comps []scoring.PillarComputation) []string {
	return pillarsInBand(comps, func(pct float64) bool { return pct < 60 })
}

func pillarsInBand(comps []scoring.PillarComputation, in func(float64) bool) []string {
	var out []string
	for _, pc := range comps {
		max := pc.Pillar.Max()
		if max <= 0 {
			continue
		}
		if pct := pc.Adjusted / max * 100; in(pct) {
			out = append(out, fmt.Sprintf("%s (%.0f%%)", pc.Pillar.Name(), pct))
		}
	}
	return out
}
