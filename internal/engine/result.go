package engine

import (
	"time"

	"github.com/uniscore/uniscore/internal/explain"
	"github.com/uniscore/uniscore/internal/model"
	"github.com/uniscore/uniscore/internal/scoring"
)

// FlagLowConfidenceCountry marks results whose country was not in the
// adjustment table; the neutral multiplier was used instead.
const FlagLowConfidenceCountry = "low_confidence_country"

// ScoringResult is the complete response for one rank request. It is a
// value: created fresh per request, never mutated, never persisted.
type ScoringResult struct {
	Institution string                `json:"institution"`
	Country     string                `json:"country"`
	Type        model.InstitutionType `json:"type"`
	Scope       model.ScopeLevel      `json:"scope"`

	Composite       float64                  `json:"composite_score"`
	Tier            scoring.Tier             `json:"tier"`
	TierDescription string                   `json:"tier_description"`
	Breakdown       []model.PillarScore      `json:"breakdown"`
	Confidence      float64                  `json:"confidence"`
	Rationale       []explain.RationaleEntry `json:"rationale"`

	DataQuality float64  `json:"data_quality"`
	Estimated   bool     `json:"estimated"`
	Sources     []string `json:"sources"`
	Flags       []string `json:"flags,omitempty"`

	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// HasFlag reports whether the result carries a degradation flag.
func (r *ScoringResult) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
