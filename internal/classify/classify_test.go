package classify

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/uniscore/uniscore/internal/model"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(nil)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassify_Table(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		name string

		wantType     model.InstitutionType
		wantScope    model.ScopeLevel
		wantPatterns []string
		typeDefault  bool
		scopeDefault bool
	}{
		{
			name:         "Harvard University",
			wantType:     model.TypeTeaching,
			wantScope:    model.ScopeGlobal,
			wantPatterns: []string{"university"},
			scopeDefault: true,
		},
		{
			name:         "State University of Somewhere",
			wantType:     model.TypeResearch,
			wantScope:    model.ScopeNational,
			wantPatterns: []string{"state", "university"},
		},
		{
			name:         "National Research University of Science",
			wantType:     model.TypeResearch,
			wantScope:    model.ScopeNational,
			wantPatterns: []string{"national", "research", "university"},
		},
		{
			name:         "Massachusetts Institute of Technology",
			wantType:     model.TypeCollege,
			wantScope:    model.ScopeGlobal,
			wantPatterns: []string{"institute of technology"},
			scopeDefault: true,
		},
		{
			name:         "Royal Conservatory of Music",
			wantType:     model.TypeSpecialist,
			wantScope:    model.ScopeNational,
			wantPatterns: []string{"conservatory", "royal"},
		},
		{
			name:         "Community College of Denver",
			wantType:     model.TypeCollege,
			wantScope:    model.ScopeRegional,
			wantPatterns: []string{"college", "community", "community college"},
		},
		{
			name:         "Springfield Academy",
			wantType:     model.TypeTeaching,
			wantScope:    model.ScopeNational,
			wantPatterns: []string{},
			typeDefault:  true,
			scopeDefault: true,
		},
	}

	for _, tc := range cases {
		res, err := c.Classify(tc.name)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if res.Type != tc.wantType {
			t.Errorf("%s: type = %s, want %s", tc.name, res.Type, tc.wantType)
		}
		if res.Scope != tc.wantScope {
			t.Errorf("%s: scope = %s, want %s", tc.name, res.Scope, tc.wantScope)
		}
		if !reflect.DeepEqual(res.MatchedPatterns, tc.wantPatterns) {
			t.Errorf("%s: patterns = %v, want %v", tc.name, res.MatchedPatterns, tc.wantPatterns)
		}
		if res.TypeDefaulted != tc.typeDefault {
			t.Errorf("%s: TypeDefaulted = %v, want %v", tc.name, res.TypeDefaulted, tc.typeDefault)
		}
		if res.ScopeDefaulted != tc.scopeDefault {
			t.Errorf("%s: ScopeDefaulted = %v, want %v", tc.name, res.ScopeDefaulted, tc.scopeDefault)
		}
	}
}

func TestClassify_SpecialistOutranksCollege(t *testing.T) {
	c := newTestClassifier(t)

	// "College of Medicine" style names carry both a specialist and a
	// college token; the specialist rule sits first and must win.
	res, err := c.Classify("Imperial Business School College")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != model.TypeSpecialist {
		t.Errorf("type = %s, want %s", res.Type, model.TypeSpecialist)
	}
}

func TestClassify_ResearchRequiresUniversity(t *testing.T) {
	c := newTestClassifier(t)

	// "state" alone is not enough to infer a research university.
	res, err := c.Classify("State Academy of Fine Arts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != model.TypeTeaching || !res.TypeDefaulted {
		t.Errorf("got type=%s defaulted=%v, want defaulted teaching", res.Type, res.TypeDefaulted)
	}
	// The scope qualifier still fires on its own.
	if res.Scope != model.ScopeNational {
		t.Errorf("scope = %s, want national", res.Scope)
	}
}

func TestClassify_EmptyName(t *testing.T) {
	c := newTestClassifier(t)
	for _, name := range []string{"", "   ", "!!!"} {
		if _, err := c.Classify(name); err == nil {
			t.Errorf("Classify(%q): expected error", name)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := newTestClassifier(t)
	names := []string{
		"State University of Somewhere",
		"Community College of Denver",
		"Springfield Academy",
	}
	for _, name := range names {
		first, err := c.Classify(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i := 0; i < 10; i++ {
			again, err := c.Classify(name)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("%s: run %d diverged: %+v vs %+v", name, i, first, again)
			}
		}
	}
}

func TestRuleSet_Validate(t *testing.T) {
	empty := &RuleSet{}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty rule set")
	}

	badType := &RuleSet{TypeRules: []TypeRule{{Type: "cathedral", Tokens: []string{"x"}}}}
	if err := badType.Validate(); err == nil {
		t.Error("expected error for invalid type")
	}

	noTokens := &RuleSet{TypeRules: []TypeRule{{Type: model.TypeTeaching}}}
	if err := noTokens.Validate(); err == nil {
		t.Error("expected error for rule without tokens")
	}

	badScope := &RuleSet{
		TypeRules:  []TypeRule{{Type: model.TypeTeaching, Tokens: []string{"university"}}},
		ScopeRules: []ScopeRule{{Scope: "galactic", Tokens: []string{"x"}}},
	}
	if err := badScope.Validate(); err == nil {
		t.Error("expected error for invalid scope")
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := []byte(`type_rules:
  - type: teaching_university
    tokens: ["university"]
scope_rules:
  - scope: national
    tokens: ["national"]
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rs.TypeRules) != 1 || len(rs.ScopeRules) != 1 {
		t.Errorf("unexpected rule counts: %d type, %d scope", len(rs.TypeRules), len(rs.ScopeRules))
	}

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
