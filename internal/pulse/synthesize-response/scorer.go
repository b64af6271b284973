package synthesizeresponse

import "math/rand/v2"

// Scorer returns an integer in [lo, hi]. Strategies call it once per derived
// score so tests can inject deterministic implementations.
type Scorer func(lo, hi int) int

// UniformScorer samples uniformly from the inclusive range.
func UniformScorer(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// Bounds is an inclusive score range.
type Bounds struct {
	Min int
	Max int
}

func (b Bounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

func (b Bounds) sample(score Scorer) int {
	v := score(b.Min, b.Max)
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

var (
	FundraisingProbabilityBounds = Bounds{60, 89}
	SeriesAProbabilityBounds     = Bounds{50, 89}
	SuccessScoreBounds           = Bounds{70, 99}
	FounderQualityBounds         = Bounds{70, 99}
	MarketTimingBounds           = Bounds{60, 95}
	TractionBounds               = Bounds{50, 95}
	NetworkStrengthBounds        = Bounds{65, 99}
	RiskScoreBounds              = Bounds{20, 69}
	RiskFactorCountBounds        = Bounds{1, 2}
)
