package verified

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uniscore/uniscore/internal/model"
)

type recordFile struct {
	Institutions []model.InstitutionRecord `yaml:"institutions"`
}

// YAMLSource loads verified records from a YAML file.
type YAMLSource struct {
	Path string
}

// Load implements RecordSource.
func (s YAMLSource) Load(_ context.Context) ([]model.InstitutionRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read verified records %s: %w", s.Path, err)
	}
	var f recordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse verified records: %w", err)
	}
	for i := range f.Institutions {
		applyRecordDefaults(&f.Institutions[i])
	}
	return f.Institutions, nil
}

// StaticSource serves a compiled-in record slice. Used as the fallback
// when no records file is configured, and in tests.
type StaticSource struct {
	Records []model.InstitutionRecord
}

// Load implements RecordSource.
func (s StaticSource) Load(_ context.Context) ([]model.InstitutionRecord, error) {
	return s.Records, nil
}

// applyRecordDefaults fills in the fields the file format allows to omit.
func applyRecordDefaults(rec *model.InstitutionRecord) {
	if rec.DataQuality == 0 {
		rec.DataQuality = 1.0
	}
	if rec.ErrorMargins == (model.PillarValues{}) {
		rec.ErrorMargins = DefaultVerifiedMargins()
	}
}

// DefaultVerifiedMargins returns the uncertainty half-widths assumed for
// verified records whose source did not state its own. Verified margins
// stay well under the smallest estimated ones.
func DefaultVerifiedMargins() model.PillarValues {
	return model.PillarValues{
		Academic:     0.8,
		Graduate:     0.8,
		ROI:          0.6,
		FSR:          0.5,
		Transparency: 0.3,
		Visibility:   0.2,
	}
}

// DefaultRecords returns the built-in verified seed set.
func DefaultRecords() []model.InstitutionRecord {
	records := []model.InstitutionRecord{
		{
			Key:         "harvard university",
			DisplayName: "Harvard University",
			Country:     "USA",
			Type:        model.TypeResearch,
			Scope:       model.ScopeGlobal,
			Scores:      model.PillarValues{Academic: 25, Graduate: 24, ROI: 20, FSR: 13, Transparency: 10, Visibility: 5},
			Description: "Ivy League research university",
			Notes: map[string][]string{
				"academic": {"World-leading research institution", "Extensive library resources"},
				"graduate": {"Exceptional career outcomes", "Powerful alumni network"},
				"roi":      {"Premium brand value", "Generous financial aid programs"},
			},
		},
		{
			Key:         "massachusetts institute of technology",
			DisplayName: "Massachusetts Institute of Technology",
			Aliases:     []string{"MIT"},
			Country:     "USA",
			Type:        model.TypeResearch,
			Scope:       model.ScopeGlobal,
			Scores:      model.PillarValues{Academic: 25, Graduate: 24, ROI: 22, FSR: 14, Transparency: 9, Visibility: 5},
			Description: "World-renowned research university",
			Notes: map[string][]string{
				"academic": {"Top research output globally", "Nobel laureate faculty"},
				"graduate": {"Highly sought after by employers", "Exceptional starting salaries"},
			},
		},
		{
			Key:         "stanford university",
			DisplayName: "Stanford University",
			Country:     "USA",
			Type:        model.TypeResearch,
			Scope:       model.ScopeGlobal,
			Scores:      model.PillarValues{Academic: 24, Graduate: 23, ROI: 21, FSR: 14, Transparency: 9, Visibility: 5},
			Description: "Leading research university",
			Notes: map[string][]string{
				"academic": {"Silicon Valley research hub", "Innovation-focused programs"},
				"graduate": {"Strong tech industry placement", "Entrepreneurship support"},
			},
		},
		{
			Key:         "california institute of technology",
			DisplayName: "California Institute of Technology",
			Aliases:     []string{"Caltech"},
			Country:     "USA",
			Type:        model.TypeResearch,
			Scope:       model.ScopeGlobal,
			Scores:      model.PillarValues{Academic: 25, Graduate: 24, ROI: 20, FSR: 14, Transparency: 9, Visibility: 5},
			Description: "Elite science and engineering institute",
		},
		{
			Key:         "university of oxford",
			DisplayName: "University of Oxford",
			Aliases:     []string{"Oxford University"},
			Country:     "UK",
			Type:        model.TypeResearch,
			Scope:       model.ScopeGlobal,
			Scores:      model.PillarValues{Academic: 25, Graduate: 24, ROI: 19, FSR: 14, Transparency: 10, Visibility: 5},
			Description: "Historic research university",
			Notes: map[string][]string{
				"academic": {"Centuries of academic tradition", "World-class research facilities"},
			},
		},
		{
			Key:         "university of toronto",
			DisplayName: "University of Toronto",
			Country:     "Canada",
			Type:        model.TypeResearch,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 22, Graduate: 21, ROI: 18, FSR: 13, Transparency: 9, Visibility: 4},
			Description: "Top Canadian research university",
		},
		{
			Key:         "university of tokyo",
			DisplayName: "University of Tokyo",
			Country:     "Japan",
			Type:        model.TypeResearch,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 23, Graduate: 21, ROI: 18, FSR: 13, Transparency: 8, Visibility: 4},
			Description: "Top Japanese university",
		},
		{
			Key:         "university of sydney",
			DisplayName: "University of Sydney",
			Country:     "Australia",
			Type:        model.TypeResearch,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 21, Graduate: 20, ROI: 17, FSR: 12, Transparency: 8, Visibility: 4},
			Description: "Australian research university",
		},
		{
			Key:         "university of cape town",
			DisplayName: "University of Cape Town",
			Country:     "South Africa",
			Type:        model.TypeResearch,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 18, Graduate: 17, ROI: 15, FSR: 11, Transparency: 7, Visibility: 3},
			Description: "Top African university",
		},
		{
			Key:         "north dakota state university",
			DisplayName: "North Dakota State University",
			Aliases:     []string{"NDSU"},
			Country:     "USA",
			Type:        model.TypeResearch,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 16, Graduate: 15, ROI: 16, FSR: 11, Transparency: 9, Visibility: 4},
			Description: "Public research university",
			Notes: map[string][]string{
				"academic": {"Regional research strength", "Specialized programs"},
			},
		},
		{
			Key:         "bryant university",
			DisplayName: "Bryant University",
			Country:     "USA",
			Type:        model.TypeTeaching,
			Scope:       model.ScopeNational,
			Scores:      model.PillarValues{Academic: 12, Graduate: 22, ROI: 16, FSR: 13, Transparency: 8, Visibility: 3},
			Description: "Private business-focused university",
			Notes: map[string][]string{
				"graduate": {"High business placement rate", "Strong corporate partnerships"},
			},
		},
		{
			Key:         "conestoga college",
			DisplayName: "Conestoga College",
			Country:     "Canada",
			Type:        model.TypeCollege,
			Scope:       model.ScopeRegional,
			Scores:      model.PillarValues{Academic: 4, Graduate: 20, ROI: 18, FSR: 13, Transparency: 7, Visibility: 4},
			Description: "Canadian polytechnic institute",
			Notes: map[string][]string{
				"roi": {"Affordable tuition", "Quick entry to workforce"},
			},
		},
		{
			Key:         "algonquin college",
			DisplayName: "Algonquin College",
			Country:     "Canada",
			Type:        model.TypeCollege,
			Scope:       model.ScopeRegional,
			Scores:      model.PillarValues{Academic: 4, Graduate: 19, ROI: 17, FSR: 12, Transparency: 6, Visibility: 3},
			Description: "Canadian college",
		},
		{
			Key:         "community college of philadelphia",
			DisplayName: "Community College of Philadelphia",
			Country:     "USA",
			Type:        model.TypeCollege,
			Scope:       model.ScopeRegional,
			Scores:      model.PillarValues{Academic: 3, Graduate: 16, ROI: 18, FSR: 11, Transparency: 5, Visibility: 2},
			Description: "Urban community college",
		},
	}

	for i := range records {
		records[i].DataQuality = 1.0
		records[i].ErrorMargins = DefaultVerifiedMargins()
		records[i].Sources = []string{
			"Institutional annual reports",
			"Accreditation agency data",
			"Government education statistics",
			"International ranking databases",
		}
	}
	return records
}
