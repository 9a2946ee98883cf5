// Package engine wires the scoring pipeline together: verified lookup,
// pattern classification, estimation, composite scoring, tier assignment
// and rationale generation. The engine is stateless per request; all
// tables are loaded once and read-only, so a single Engine is safe for
// unbounded concurrent use.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uniscore/uniscore/internal/classify"
	"github.com/uniscore/uniscore/internal/country"
	"github.com/uniscore/uniscore/internal/estimate"
	"github.com/uniscore/uniscore/internal/explain"
	"github.com/uniscore/uniscore/internal/model"
	"github.com/uniscore/uniscore/internal/scoring"
	"github.com/uniscore/uniscore/internal/verified"
)

// Engine is the university scoring engine entry point.
type Engine struct {
	db         *verified.Database
	countries  *country.Table
	classifier *classify.Classifier
	estimator  *estimate.Engine
	calc       *scoring.Calculator
	generator  *explain.Generator
}

// Options configures engine construction. Zero-value fields fall back to
// the compiled-in defaults.
type Options struct {
	Records    verified.RecordSource
	Countries  *country.Table
	Rules      *classify.RuleSet
	TypeAdjust *scoring.TypeAdjustment
}

// New builds an engine, loading the verified database through the
// configured record source. This is the only blocking step; everything
// after construction is pure in-memory computation.
func New(ctx context.Context, opts Options) (*Engine, error) {
	src := opts.Records
	if src == nil {
		src = verified.StaticSource{Records: verified.DefaultRecords()}
	}
	db, err := verified.Open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("engine init: %w", err)
	}

	countries := opts.Countries
	if countries == nil {
		countries = country.DefaultTable()
	}

	classifier, err := classify.NewClassifier(opts.Rules)
	if err != nil {
		return nil, fmt.Errorf("engine init: %w", err)
	}

	return &Engine{
		db:         db,
		countries:  countries,
		classifier: classifier,
		estimator:  estimate.NewEngine(),
		calc:       scoring.NewCalculator(opts.TypeAdjust),
		generator:  explain.NewGenerator(),
	}, nil
}

// Rank scores one institution. It either returns a complete ScoringResult
// or an error; no partial results. Unknown countries do not fail: they
// degrade to the neutral multiplier and flag the result.
func (e *Engine) Rank(ctx context.Context, name, countryName string) (*ScoringResult, error) {
	if model.NormalizeKey(name) == "" {
		return nil, invalidInput("name", "institution name is empty")
	}

	profile, countryKnown := e.countries.Lookup(countryName)

	record, found := e.db.Lookup(name)
	if !found {
		cls, err := e.classifier.Classify(name)
		if err != nil {
			return nil, invalidInput("name", err.Error())
		}
		synthetic, err := e.estimator.Estimate(name, countryName, cls)
		if err != nil {
			return nil, invalidInput("name", err.Error())
		}
		record = &synthetic
	}

	composite, comps := e.calc.Score(record, profile)

	tier, err := scoring.TierForScore(composite)
	if err != nil {
		// The scorer clamps to [0,100]; reaching this means a broken
		// invariant, not a bad request.
		return nil, outOfRange("composite_score", err.Error())
	}

	breakdown := make([]model.PillarScore, 0, len(comps))
	for _, pc := range comps {
		breakdown = append(breakdown, pc.Score())
	}

	result := &ScoringResult{
		Institution:     displayName(record, name),
		Country:         profile.Key,
		Type:            record.Type,
		Scope:           record.Scope,
		Composite:       composite,
		Tier:            tier,
		TierDescription: tier.Description(),
		Breakdown:       breakdown,
		Confidence:      scoring.Confidence(comps),
		Rationale:       e.generator.Explain(comps, record, profile),
		DataQuality:     record.DataQuality,
		Estimated:       record.Estimated(),
		Sources:         record.Sources,
		Strengths:       explain.Strengths(comps),
		Improvements:    explain.Improvements(comps),
		GeneratedAt:     time.Now().UTC(),
	}
	if !countryKnown && countryName != "" {
		result.Flags = append(result.Flags, FlagLowConfidenceCountry)
	}

	log.Debug().
		Str("institution", result.Institution).
		Str("country", result.Country).
		Float64("composite", composite).
		Str("tier", string(tier)).
		Bool("estimated", result.Estimated).
		Msg("ranked institution")

	return result, nil
}

// ExplainPillar returns the rationale entry for one pillar of a result.
func ExplainPillar(result *ScoringResult, index int) (explain.RationaleEntry, error) {
	if result == nil {
		return explain.RationaleEntry{}, invalidInput("result", "nil scoring result")
	}
	if index < 0 || index >= len(result.Rationale) {
		return explain.RationaleEntry{}, outOfRange("pillar_index",
			fmt.Sprintf("pillar index %d outside [0, %d)", index, len(result.Rationale)))
	}
	return result.Rationale[index], nil
}

func displayName(record *model.InstitutionRecord, requested string) string {
	if record.DisplayName != "" {
		return record.DisplayName
	}
	return requested
}
