package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/uniscore/uniscore/internal/country"
	"github.com/uniscore/uniscore/internal/model"
)

func verifiedRecord() *model.InstitutionRecord {
	return &model.InstitutionRecord{
		Key:         "harvard university",
		DisplayName: "Harvard University",
		Country:     "USA",
		Type:        model.TypeResearch,
		Scope:       model.ScopeGlobal,
		Scores:      model.PillarValues{Academic: 25, Graduate: 24, ROI: 20, FSR: 13, Transparency: 10, Visibility: 5},
		ErrorMargins: model.PillarValues{
			Academic: 0.8, Graduate: 0.8, ROI: 0.6, FSR: 0.5, Transparency: 0.3, Visibility: 0.2,
		},
		DataQuality: 1.0,
	}
}

func usaProfile() country.Profile {
	return country.Profile{Key: "USA", Multiplier: 1.2, Tier: country.TierWorldLeader}
}

func neutralProfile() country.Profile {
	return country.Profile{Key: "ATLANTIS", Multiplier: 1.0, Tier: country.TierUnclassified}
}

func TestScore_VerifiedTopInstitution(t *testing.T) {
	calc := NewCalculator(nil)
	composite, comps := calc.Score(verifiedRecord(), usaProfile())

	// Academic and Graduate saturate at their maxima under the 1.2x
	// multiplier; Visibility saturates too. ROI/FSR/Transparency pass
	// through untouched: 25+25+20+13+10+5 = 98.
	if composite != 98.0 {
		t.Errorf("composite = %.1f, want 98.0", composite)
	}
	if len(comps) != model.PillarCount {
		t.Fatalf("got %d pillar computations, want %d", len(comps), model.PillarCount)
	}

	wantAdjusted := []float64{25, 25, 20, 13, 10, 5}
	for i, pc := range comps {
		if pc.Adjusted != wantAdjusted[i] {
			t.Errorf("pillar %s: adjusted = %.1f, want %.1f", pc.Pillar.Code(), pc.Adjusted, wantAdjusted[i])
		}
		if pc.Adjusted > pc.Pillar.Max() {
			t.Errorf("pillar %s: adjusted %.1f exceeds max %.1f", pc.Pillar.Code(), pc.Adjusted, pc.Pillar.Max())
		}
		if pc.Source != model.SourceVerified {
			t.Errorf("pillar %s: source = %s, want verified", pc.Pillar.Code(), pc.Source)
		}
	}
}

func TestScore_CountryMultiplierOnlySensitivePillars(t *testing.T) {
	calc := NewCalculator(nil)
	rec := verifiedRecord()
	rec.Type = model.TypeTeaching
	rec.Scores = model.PillarValues{Academic: 10, Graduate: 10, ROI: 10, FSR: 10, Transparency: 8, Visibility: 3}

	_, comps := calc.Score(rec, usaProfile())

	want := map[model.Pillar]float64{
		model.PillarAcademic:     12.0, // 10 * 1.2
		model.PillarGraduate:     12.0,
		model.PillarROI:          10.0, // untouched
		model.PillarFSR:          10.0,
		model.PillarTransparency: 8.0,
		model.PillarVisibility:   3.6,
	}
	for _, pc := range comps {
		if pc.Adjusted != want[pc.Pillar] {
			t.Errorf("pillar %s: adjusted = %.1f, want %.1f", pc.Pillar.Code(), pc.Adjusted, want[pc.Pillar])
		}
	}
}

func TestScore_TypeAdjustmentAcademicOnly(t *testing.T) {
	calc := NewCalculator(nil)

	research := verifiedRecord()
	research.Scores = model.PillarValues{Academic: 10, Graduate: 10, ROI: 10, FSR: 10, Transparency: 8, Visibility: 3}

	teaching := verifiedRecord()
	teaching.Type = model.TypeTeaching
	teaching.Scores = research.Scores

	_, rc := calc.Score(research, neutralProfile())
	_, tcc := calc.Score(teaching, neutralProfile())

	if rc[0].Adjusted != 10.5 {
		t.Errorf("research academic = %.1f, want 10.5", rc[0].Adjusted)
	}
	if tcc[0].Adjusted != 10.0 {
		t.Errorf("teaching academic = %.1f, want 10.0", tcc[0].Adjusted)
	}
	for i := 1; i < model.PillarCount; i++ {
		if rc[i].Adjusted != tcc[i].Adjusted {
			t.Errorf("pillar %s differs across types: %.1f vs %.1f",
				rc[i].Pillar.Code(), rc[i].Adjusted, tcc[i].Adjusted)
		}
	}
}

func TestScore_AdjustmentTrail(t *testing.T) {
	calc := NewCalculator(nil)
	_, comps := calc.Score(verifiedRecord(), usaProfile())

	academic := comps[0]
	stages := make([]string, 0, len(academic.Adjustments))
	for _, a := range academic.Adjustments {
		stages = append(stages, a.Stage)
	}
	want := []string{StageCountryMultiplier, StageTypeAdjustment, StageClamp}
	if len(stages) != len(want) {
		t.Fatalf("academic stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("academic stage %d = %s, want %s", i, stages[i], want[i])
		}
	}

	// ROI is country-insensitive and not the academic pillar: no stages.
	roi := comps[2]
	if len(roi.Adjustments) != 0 {
		t.Errorf("roi has %d adjustments, want 0", len(roi.Adjustments))
	}
}

func TestScore_NeutralProfileRecordsNoCountryStage(t *testing.T) {
	calc := NewCalculator(nil)
	rec := verifiedRecord()
	rec.Type = model.TypeTeaching
	rec.Scores = model.PillarValues{Academic: 10, Graduate: 10, ROI: 10, FSR: 10, Transparency: 8, Visibility: 3}

	composite, comps := calc.Score(rec, neutralProfile())
	if composite != 51.0 {
		t.Errorf("composite = %.1f, want 51.0", composite)
	}
	for _, pc := range comps {
		if len(pc.Adjustments) != 0 {
			t.Errorf("pillar %s: %d adjustments under neutral profile, want 0", pc.Pillar.Code(), len(pc.Adjustments))
		}
	}
}

func TestScore_MonotonicInRawPillars(t *testing.T) {
	calc := NewCalculator(nil)
	rng := rand.New(rand.NewSource(7))
	profiles := []country.Profile{usaProfile(), neutralProfile(), {Key: "INDIA", Multiplier: 0.85, Tier: country.TierDeveloping}}

	for trial := 0; trial < 200; trial++ {
		rec := verifiedRecord()
		for _, p := range model.Pillars() {
			rec.Scores.Set(p, rng.Float64()*p.Max())
		}
		profile := profiles[trial%len(profiles)]
		base, _ := calc.Score(rec, profile)

		// Raising any single raw pillar must never lower the composite.
		for _, p := range model.Pillars() {
			bumped := *rec
			bumped.Scores.Set(p, math.Min(rec.Scores.Value(p)+rng.Float64()*2, p.Max()))
			got, _ := calc.Score(&bumped, profile)
			if got < base {
				t.Fatalf("trial %d: raising %s lowered composite %.1f -> %.1f (profile %s)",
					trial, p.Code(), base, got, profile.Key)
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	calc := NewCalculator(nil)
	rec := verifiedRecord()
	first, _ := calc.Score(rec, usaProfile())
	for i := 0; i < 20; i++ {
		again, _ := calc.Score(rec, usaProfile())
		if again != first {
			t.Fatalf("run %d: composite %.1f diverged from %.1f", i, again, first)
		}
	}
}

func TestConfidence(t *testing.T) {
	comps := []PillarComputation{
		{ErrorMargin: 3},
		{ErrorMargin: 4},
	}
	if got := Confidence(comps); got != 5.0 {
		t.Errorf("Confidence = %.1f, want 5.0", got)
	}
	if got := Confidence(nil); got != 0.0 {
		t.Errorf("Confidence(nil) = %.1f, want 0.0", got)
	}
}

func TestNewTypeAdjustment_Validation(t *testing.T) {
	if _, err := NewTypeAdjustment(map[model.InstitutionType]float64{"cathedral": 1.0}); err == nil {
		t.Error("expected error for invalid type")
	}
	if _, err := NewTypeAdjustment(map[model.InstitutionType]float64{model.TypeResearch: 1.2}); err == nil {
		t.Error("expected error for factor above 1.05")
	}
	ta, err := NewTypeAdjustment(map[model.InstitutionType]float64{model.TypeResearch: 1.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ta.Factor(model.TypeTeaching) != 1.0 {
		t.Error("unlisted type should get neutral factor")
	}
}
