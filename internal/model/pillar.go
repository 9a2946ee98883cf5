package model

import "fmt"

// Pillar identifies one of the six scoring dimensions. The ordering is
// fixed and matches the order pillars appear in every breakdown.
type Pillar int

const (
	PillarAcademic Pillar = iota
	PillarGraduate
	PillarROI
	PillarFSR
	PillarTransparency
	PillarVisibility
)

const PillarCount = 6

// pillarDef carries the static definition of a pillar: display name,
// short code used in configuration files, and maximum attainable value.
type pillarDef struct {
	code string
	name string
	max  float64
}

var pillarDefs = [PillarCount]pillarDef{
	{code: "academic", name: "Academic Reputation & Research", max: 25},
	{code: "graduate", name: "Graduate Prospects", max: 25},
	{code: "roi", name: "ROI / Affordability", max: 20},
	{code: "fsr", name: "Faculty-Student Ratio", max: 15},
	{code: "transparency", name: "Transparency & Recognition", max: 10},
	{code: "visibility", name: "Visibility & Presence", max: 5},
}

// Pillars returns all pillars in breakdown order.
func Pillars() [PillarCount]Pillar {
	return [PillarCount]Pillar{
		PillarAcademic, PillarGraduate, PillarROI,
		PillarFSR, PillarTransparency, PillarVisibility,
	}
}

// Code returns the short configuration key for the pillar.
func (p Pillar) Code() string {
	if p < 0 || int(p) >= PillarCount {
		return "unknown"
	}
	return pillarDefs[p].code
}

// Name returns the human-readable pillar name.
func (p Pillar) Name() string {
	if p < 0 || int(p) >= PillarCount {
		return "Unknown"
	}
	return pillarDefs[p].name
}

// Max returns the maximum attainable value for the pillar. The six maxima
// sum to 100, so an unadjusted perfect record scores exactly 100.
func (p Pillar) Max() float64 {
	if p < 0 || int(p) >= PillarCount {
		return 0
	}
	return pillarDefs[p].max
}

// PillarByCode resolves a configuration key back to a pillar.
func PillarByCode(code string) (Pillar, error) {
	for i, def := range pillarDefs {
		if def.code == code {
			return Pillar(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pillar code: %s", code)
}

// CountrySensitive reports whether the pillar is scaled by the country
// multiplier. Only Academic Reputation, Graduate Prospects and Visibility
// respond to national context; the remaining pillars are treated as
// institution-intrinsic.
func (p Pillar) CountrySensitive() bool {
	switch p {
	case PillarAcademic, PillarGraduate, PillarVisibility:
		return true
	default:
		return false
	}
}

// PillarValues holds one float per pillar. It is used both for raw scores
// and for per-pillar error spreads.
type PillarValues struct {
	Academic     float64 `yaml:"academic" json:"academic"`
	Graduate     float64 `yaml:"graduate" json:"graduate"`
	ROI          float64 `yaml:"roi" json:"roi"`
	FSR          float64 `yaml:"fsr" json:"fsr"`
	Transparency float64 `yaml:"transparency" json:"transparency"`
	Visibility   float64 `yaml:"visibility" json:"visibility"`
}

// Value returns the entry for a pillar.
func (v PillarValues) Value(p Pillar) float64 {
	switch p {
	case PillarAcademic:
		return v.Academic
	case PillarGraduate:
		return v.Graduate
	case PillarROI:
		return v.ROI
	case PillarFSR:
		return v.FSR
	case PillarTransparency:
		return v.Transparency
	case PillarVisibility:
		return v.Visibility
	default:
		return 0
	}
}

// Set assigns the entry for a pillar.
func (v *PillarValues) Set(p Pillar, value float64) {
	switch p {
	case PillarAcademic:
		v.Academic = value
	case PillarGraduate:
		v.Graduate = value
	case PillarROI:
		v.ROI = value
	case PillarFSR:
		v.FSR = value
	case PillarTransparency:
		v.Transparency = value
	case PillarVisibility:
		v.Visibility = value
	}
}

// Sum returns the total across all six pillars.
func (v PillarValues) Sum() float64 {
	return v.Academic + v.Graduate + v.ROI + v.FSR + v.Transparency + v.Visibility
}

// Validate checks every pillar value against [0, max].
func (v PillarValues) Validate() error {
	for _, p := range Pillars() {
		val := v.Value(p)
		if val < 0 || val > p.Max() {
			return fmt.Errorf("pillar %s value %.1f outside [0, %.0f]", p.Code(), val, p.Max())
		}
	}
	return nil
}

// SourceQuality labels where a pillar value came from.
type SourceQuality string

const (
	SourceVerified        SourceQuality = "verified"
	SourceEstimated       SourceQuality = "estimated"
	SourcePatternInferred SourceQuality = "pattern_inferred"
)

// PillarScore is one entry of a scoring breakdown. Value is always clamped
// to [0, max]; ErrorMargin is the half-width of the uncertainty band and is
// deliberately not clamped, so Value+ErrorMargin may exceed the pillar max.
type PillarScore struct {
	Pillar      Pillar        `json:"-"`
	Code        string        `json:"pillar"`
	Name        string        `json:"name"`
	Value       float64       `json:"value"`
	Max         float64       `json:"max"`
	ErrorMargin float64       `json:"error_margin"`
	Source      SourceQuality `json:"source"`
}
