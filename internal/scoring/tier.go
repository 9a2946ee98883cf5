package scoring

import "fmt"

// Tier is the discrete letter grade derived from the composite score.
type Tier string

const (
	TierAPlus Tier = "A+"
	TierA     Tier = "A"
	TierB     Tier = "B"
	TierCPlus Tier = "C+"
	TierC     Tier = "C"
	TierD     Tier = "D"
)

// tierBucket is one closed-open score range [Low, High); the top bucket
// closes at 100 inclusive.
type tierBucket struct {
	Tier        Tier
	Low         float64
	Description string
}

// Buckets in descending order; first Low <= score wins, which gives
// boundary values (85, 75, ...) to the higher bucket.
var tierBuckets = []tierBucket{
	{TierAPlus, 85, "World-class institutions with global recognition"},
	{TierA, 75, "Excellent institutions with strong national or international reputation"},
	{TierB, 65, "Good institutions with solid regional or national presence"},
	{TierCPlus, 55, "Average institutions meeting basic standards"},
	{TierC, 45, "Below average institutions needing improvement"},
	{TierD, 0, "Institutions with significant deficiencies"},
}

// TierForScore maps a composite score onto its tier. Scores outside
// [0, 100] violate the composite scorer's contract; the error is an
// internal assertion, not a user-facing condition.
func TierForScore(score float64) (Tier, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("composite score %.1f outside [0, 100]", score)
	}
	for _, b := range tierBuckets {
		if score >= b.Low {
			return b.Tier, nil
		}
	}
	return TierD, nil
}

// Description returns the one-line tier summary.
func (t Tier) Description() string {
	for _, b := range tierBuckets {
		if b.Tier == t {
			return b.Description
		}
	}
	return ""
}

// TierRanges returns the tier table for display, top tier first, as
// [tier, low, high] rows.
func TierRanges() []struct {
	Tier      Tier
	Low, High float64
} {
	out := make([]struct {
		Tier      Tier
		Low, High float64
	}, len(tierBuckets))
	high := 100.0
	for i, b := range tierBuckets {
		out[i].Tier = b.Tier
		out[i].Low = b.Low
		out[i].High = high
		high = b.Low
	}
	return out
}
