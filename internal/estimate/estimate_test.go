package estimate

import (
	"math"
	"reflect"
	"testing"

	"github.com/uniscore/uniscore/internal/classify"
	"github.com/uniscore/uniscore/internal/model"
)

func mustClassify(t *testing.T, name string) classify.Result {
	t.Helper()
	c, err := classify.NewClassifier(nil)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	res, err := c.Classify(name)
	if err != nil {
		t.Fatalf("Classify(%q): %v", name, err)
	}
	return res
}

func TestEstimate_StateUniversityPattern(t *testing.T) {
	e := NewEngine()
	name := "State University of Somewhere"
	cls := mustClassify(t, name)

	rec, err := e.Estimate(name, "USA", cls)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if rec.Key != "state university of somewhere" {
		t.Errorf("key = %q", rec.Key)
	}
	if rec.Type != model.TypeResearch || rec.Scope != model.ScopeNational {
		t.Errorf("classified as %s/%s", rec.Type, rec.Scope)
	}

	// The "state university" pattern profile, not the research-type
	// fallback, must drive the base scores.
	want := model.PillarValues{Academic: 15, Graduate: 14, ROI: 16, FSR: 10, Transparency: 9, Visibility: 3}
	if rec.Scores != want {
		t.Errorf("scores = %+v, want %+v", rec.Scores, want)
	}

	// Two matched patterns: quality 0.10 + 2*0.05 = 0.20, factor 0.95.
	if math.Abs(rec.DataQuality-0.20) > 1e-9 {
		t.Errorf("data quality = %.2f, want 0.20", rec.DataQuality)
	}
	wantMargin := 2.0 * (1.0 / 0.20) * 0.95
	if math.Abs(rec.ErrorMargins.Academic-wantMargin) > 1e-9 {
		t.Errorf("academic margin = %.3f, want %.3f", rec.ErrorMargins.Academic, wantMargin)
	}

	if !rec.Estimated() {
		t.Error("estimated record reported as verified")
	}
	if rec.SourceQuality() != model.SourcePatternInferred {
		t.Errorf("source quality = %s, want pattern_inferred", rec.SourceQuality())
	}
	if len(rec.Sources) == 0 {
		t.Error("estimated record carries no sources")
	}
}

func TestEstimate_TypeFallbackProfiles(t *testing.T) {
	e := NewEngine()

	cases := []struct {
		name         string
		wantAcademic float64
		wantGraduate float64
	}{
		// teaching fallback, Global scope: no matched tokens beyond
		// "university", visibility/transparency bias applies there instead
		{"Riverside University", 12, 15},
		// college profile
		{"Lakeside Polytechnic", 6, 16},
		// specialist profile
		{"Metropolitan Business School", 14, 19},
	}
	for _, tc := range cases {
		cls := mustClassify(t, tc.name)
		rec, err := e.Estimate(tc.name, "UK", cls)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if rec.Scores.Academic != tc.wantAcademic {
			t.Errorf("%s: academic = %.1f, want %.1f", tc.name, rec.Scores.Academic, tc.wantAcademic)
		}
		if rec.Scores.Graduate != tc.wantGraduate {
			t.Errorf("%s: graduate = %.1f, want %.1f", tc.name, rec.Scores.Graduate, tc.wantGraduate)
		}
	}
}

func TestEstimate_ScopeBias(t *testing.T) {
	e := NewEngine()

	// "Riverside University" defaults to Global scope: +0.5 on visibility
	// and transparency over the teaching base of 3.0 / 7.0.
	global, err := e.Estimate("Riverside University", "UK", mustClassify(t, "Riverside University"))
	if err != nil {
		t.Fatal(err)
	}
	if global.Scores.Visibility != 3.5 || global.Scores.Transparency != 7.5 {
		t.Errorf("global bias: visibility=%.1f transparency=%.1f, want 3.5/7.5", global.Scores.Visibility, global.Scores.Transparency)
	}

	// A regional qualifier pulls both down instead.
	regional, err := e.Estimate("Riverside Metropolitan University", "UK", mustClassify(t, "Riverside Metropolitan University"))
	if err != nil {
		t.Fatal(err)
	}
	if regional.Scores.Visibility != 2.5 || regional.Scores.Transparency != 6.5 {
		t.Errorf("regional bias: visibility=%.1f transparency=%.1f, want 2.5/6.5", regional.Scores.Visibility, regional.Scores.Transparency)
	}
}

func TestEstimate_DataQualityNeverReachesVerified(t *testing.T) {
	e := NewEngine()
	names := []string{
		"State University of Somewhere",
		"National Research University of Science and Technology",
		"Riverside University",
		"Springfield Academy",
		"Community College of Denver",
	}
	for _, name := range names {
		rec, err := e.Estimate(name, "USA", mustClassify(t, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if rec.DataQuality > MaxDataQuality {
			t.Errorf("%s: data quality %.2f exceeds cap %.2f", name, rec.DataQuality, MaxDataQuality)
		}
		if rec.DataQuality < 0.1 {
			t.Errorf("%s: data quality %.2f below floor", name, rec.DataQuality)
		}
	}
}

func TestEstimate_DefaultedClassificationWidensMargins(t *testing.T) {
	e := NewEngine()

	// Nothing matches: both type and scope defaulted, factor 1.5,
	// quality 0.1 so margins are at their widest.
	blind, err := e.Estimate("Springfield Academy", "USA", mustClassify(t, "Springfield Academy"))
	if err != nil {
		t.Fatal(err)
	}
	confident, err := e.Estimate("State University of Somewhere", "USA", mustClassify(t, "State University of Somewhere"))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range model.Pillars() {
		if blind.ErrorMargins.Value(p) <= confident.ErrorMargins.Value(p) {
			t.Errorf("pillar %s: blind margin %.2f not wider than confident %.2f",
				p.Code(), blind.ErrorMargins.Value(p), confident.ErrorMargins.Value(p))
		}
	}
	if blind.SourceQuality() != model.SourceEstimated {
		t.Errorf("blind source quality = %s, want estimated", blind.SourceQuality())
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	e := NewEngine()
	name := "State University of Somewhere"
	cls := mustClassify(t, name)

	first, err := e.Estimate(name, "USA", cls)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := e.Estimate(name, "USA", cls)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged", i)
		}
	}
}

func TestEstimate_EmptyName(t *testing.T) {
	e := NewEngine()
	if _, err := e.Estimate("", "USA", classify.Result{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestEstimationFactorBounds(t *testing.T) {
	// Fully defaulted classification sits at the upper clamp.
	f := estimationFactor(classify.Result{TypeDefaulted: true, ScopeDefaulted: true})
	if f != 1.5 {
		t.Errorf("fully defaulted factor = %.2f, want 1.50", f)
	}
	// Many agreeing patterns cannot push the factor below the floor.
	many := classify.Result{MatchedPatterns: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}}
	if f := estimationFactor(many); f < 0.6 {
		t.Errorf("factor %.2f below floor", f)
	}
}
