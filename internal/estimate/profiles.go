package estimate

import "github.com/uniscore/uniscore/internal/model"

// BaseProfile is a per-type (or per-pattern) starting point for estimated
// pillar values. Spreads are the ± half-widths surfaced as error margins;
// nothing is ever sampled from them.
type BaseProfile struct {
	Scores  model.PillarValues
	Spreads model.PillarValues
}

// patternProfiles override the type-based bases when a specific name
// pattern fired. Checked in order; first match wins.
var patternProfiles = []struct {
	Pattern string
	Profile BaseProfile
}{
	{
		// Public "State University" institutions cluster tightly in the
		// seed data, so they get their own profile.
		Pattern: "state university",
		Profile: BaseProfile{
			Scores:  model.PillarValues{Academic: 15.0, Graduate: 14.0, ROI: 16.0, FSR: 10.0, Transparency: 9.0, Visibility: 3.0},
			Spreads: model.PillarValues{Academic: 2.0, Graduate: 2.5, ROI: 2.0, FSR: 1.5, Transparency: 1.0, Visibility: 0.5},
		},
	},
}

// typeProfiles are the fallback bases by institution type.
var typeProfiles = map[model.InstitutionType]BaseProfile{
	model.TypeResearch: {
		Scores:  model.PillarValues{Academic: 18.0, Graduate: 17.0, ROI: 15.0, FSR: 11.0, Transparency: 8.0, Visibility: 4.0},
		Spreads: model.PillarValues{Academic: 2.5, Graduate: 2.5, ROI: 2.0, FSR: 1.5, Transparency: 1.0, Visibility: 0.5},
	},
	model.TypeTeaching: {
		Scores:  model.PillarValues{Academic: 12.0, Graduate: 15.0, ROI: 14.0, FSR: 11.0, Transparency: 7.0, Visibility: 3.0},
		Spreads: model.PillarValues{Academic: 2.5, Graduate: 2.5, ROI: 2.0, FSR: 1.5, Transparency: 1.0, Visibility: 0.5},
	},
	model.TypeCollege: {
		Scores:  model.PillarValues{Academic: 6.0, Graduate: 16.0, ROI: 16.0, FSR: 10.0, Transparency: 6.0, Visibility: 2.0},
		Spreads: model.PillarValues{Academic: 1.5, Graduate: 2.5, ROI: 2.0, FSR: 1.5, Transparency: 1.0, Visibility: 0.5},
	},
	model.TypeSpecialist: {
		Scores:  model.PillarValues{Academic: 14.0, Graduate: 19.0, ROI: 16.0, FSR: 11.0, Transparency: 7.0, Visibility: 3.0},
		Spreads: model.PillarValues{Academic: 3.0, Graduate: 2.5, ROI: 2.0, FSR: 1.5, Transparency: 1.0, Visibility: 0.5},
	},
}

// scopeBias shifts Visibility and Transparency by scope. Global names get
// a small upward bias, Regional a downward one; National is neutral.
var scopeBias = map[model.ScopeLevel]struct{ Visibility, Transparency float64 }{
	model.ScopeGlobal:   {Visibility: 0.5, Transparency: 0.5},
	model.ScopeNational: {},
	model.ScopeRegional: {Visibility: -0.5, Transparency: -0.5},
}
