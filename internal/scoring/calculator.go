// Package scoring applies country and type adjustments to per-pillar
// values and produces the composite 0–100 score. Each adjustment is a
// named stage recorded on the pillar computation so the rationale layer
// can cite every factor that was actually applied.
package scoring

import (
	"math"

	"github.com/uniscore/uniscore/internal/country"
	"github.com/uniscore/uniscore/internal/model"
)

// Stage names recorded on pillar computations.
const (
	StageCountryMultiplier = "country_multiplier"
	StageTypeAdjustment    = "type_adjustment"
	StageClamp             = "clamp"
)

// Adjustment is one applied pipeline stage.
type Adjustment struct {
	Stage  string  `json:"stage"`
	Factor float64 `json:"factor"`
}

// PillarComputation traces one pillar through the adjustment pipeline.
type PillarComputation struct {
	Pillar      model.Pillar
	Raw         float64
	Adjusted    float64
	ErrorMargin float64
	Source      model.SourceQuality
	Adjustments []Adjustment
}

// Score is the clamped PillarScore view of the computation.
func (pc PillarComputation) Score() model.PillarScore {
	return model.PillarScore{
		Pillar:      pc.Pillar,
		Code:        pc.Pillar.Code(),
		Name:        pc.Pillar.Name(),
		Value:       pc.Adjusted,
		Max:         pc.Pillar.Max(),
		ErrorMargin: pc.ErrorMargin,
		Source:      pc.Source,
	}
}

// Calculator computes composite scores. It is stateless apart from the
// read-only type adjustment table and safe for concurrent use.
type Calculator struct {
	typeAdj *TypeAdjustment
}

// NewCalculator builds a calculator; nil installs the default adjustments.
func NewCalculator(typeAdj *TypeAdjustment) *Calculator {
	if typeAdj == nil {
		typeAdj = DefaultTypeAdjustment()
	}
	return &Calculator{typeAdj: typeAdj}
}

// Score runs every pillar through the adjustment pipeline and sums the
// clamped results. The pipeline per pillar is: country multiplier (only
// on country-sensitive pillars), type adjustment (Academic only), then
// clamp to [0, max]. Per-pillar clamping before summation keeps the
// composite monotonic in every raw pillar value: a raised raw score can
// plateau at the pillar max but can never lower the total.
func (c *Calculator) Score(record *model.InstitutionRecord, profile country.Profile) (float64, []PillarComputation) {
	source := record.SourceQuality()
	comps := make([]PillarComputation, 0, model.PillarCount)
	composite := 0.0

	for _, p := range model.Pillars() {
		pc := PillarComputation{
			Pillar:      p,
			Raw:         record.Scores.Value(p),
			ErrorMargin: record.ErrorMargins.Value(p),
			Source:      source,
		}

		value := pc.Raw
		if p.CountrySensitive() && profile.Multiplier != 1.0 {
			value *= profile.Multiplier
			pc.Adjustments = append(pc.Adjustments, Adjustment{Stage: StageCountryMultiplier, Factor: profile.Multiplier})
		}
		if p == model.PillarAcademic {
			if f := c.typeAdj.Factor(record.Type); f != 1.0 {
				value *= f
				pc.Adjustments = append(pc.Adjustments, Adjustment{Stage: StageTypeAdjustment, Factor: f})
			}
		}
		if clamped := clamp(value, 0, p.Max()); clamped != value {
			factor := 1.0
			if value != 0 {
				factor = clamped / value
			}
			pc.Adjustments = append(pc.Adjustments, Adjustment{Stage: StageClamp, Factor: factor})
			value = clamped
		}

		pc.Adjusted = round1(value)
		composite += pc.Adjusted
		comps = append(comps, pc)
	}

	// Pillar maxima sum to 100, so this clamp only fires if the pillar
	// tables are edited inconsistently.
	return round1(clamp(composite, 0, 100)), comps
}

// Confidence derives the composite error margin from the per-pillar
// margins (root sum of squares, so independent uncertainties do not
// simply add).
func Confidence(comps []PillarComputation) float64 {
	sum := 0.0
	for _, pc := range comps {
		sum += pc.ErrorMargin * pc.ErrorMargin
	}
	return round1(math.Sqrt(sum))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
