package scoring

import (
	"fmt"

	"github.com/uniscore/uniscore/internal/model"
)

// TypeAdjustment maps institution type to the multiplicative modifier
// applied to the Academic Reputation pillar only. Research universities
// get the documented up-to-5% bonus; applying the modifier to any other
// pillar is out of contract.
type TypeAdjustment struct {
	factors map[model.InstitutionType]float64
}

// NewTypeAdjustment validates and installs a factor table.
func NewTypeAdjustment(factors map[model.InstitutionType]float64) (*TypeAdjustment, error) {
	for typ, f := range factors {
		if !typ.Valid() {
			return nil, fmt.Errorf("type adjustment: invalid type %q", typ)
		}
		if f < 0.95 || f > 1.05 {
			return nil, fmt.Errorf("type adjustment for %s: factor %.3f outside [0.95, 1.05]", typ, f)
		}
	}
	return &TypeAdjustment{factors: factors}, nil
}

// DefaultTypeAdjustment returns the built-in factor table.
func DefaultTypeAdjustment() *TypeAdjustment {
	ta, err := NewTypeAdjustment(map[model.InstitutionType]float64{
		model.TypeResearch:   1.05,
		model.TypeSpecialist: 1.02,
		model.TypeTeaching:   1.00,
		model.TypeCollege:    0.97,
	})
	if err != nil {
		panic(fmt.Sprintf("default type adjustment invalid: %v", err))
	}
	return ta
}

// Factor returns the Academic modifier for a type, 1.0 when unlisted.
func (ta *TypeAdjustment) Factor(typ model.InstitutionType) float64 {
	if f, ok := ta.factors[typ]; ok {
		return f
	}
	return 1.0
}
