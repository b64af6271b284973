package synthesizeresponse

import (
	"deal-pulse/internal/models"
	classifyintent "deal-pulse/internal/pulse/classify-intent"
	extractentities "deal-pulse/internal/pulse/extract-entities"
)

// Synthesizer dispatches to one strategy per intent. It is stateless apart
// from its scorer and safe for concurrent use when the scorer is.
type Synthesizer struct {
	strategies map[classifyintent.Intent]Strategy
	fallback   Strategy
}

// NewSynthesizer builds the strategy table. A nil scorer selects UniformScorer.
func NewSynthesizer(score Scorer) *Synthesizer {
	if score == nil {
		score = UniformScorer
	}
	return &Synthesizer{
		strategies: map[classifyintent.Intent]Strategy{
			classifyintent.IntentFundraisingPrediction: fundraisingStrategy{score: score},
			classifyintent.IntentFounderAnalysis:       founderStrategy{},
			classifyintent.IntentConvictionHistory:     convictionStrategy{},
			classifyintent.IntentNetworkAnalysis:       networkStrategy{},
			classifyintent.IntentSeriesAProbability:    seriesAStrategy{score: score},
			classifyintent.IntentSuccessPrediction:     successStrategy{score: score},
			classifyintent.IntentRiskPrediction:        riskStrategy{score: score},
			classifyintent.IntentCompetitionPrediction: narrative(KindCompetition,
				"Competition is heating up in AI infrastructure and vertical SaaS. Expect more crowded rounds "+
					"and higher entry valuations over the next two quarters."),
			classifyintent.IntentMarketExpansion: narrative(KindMarketExpansion,
				"Climate and HealthTech are expanding fastest, with new buyers and budgets opening up "+
					"in enterprise and public sector markets."),
			classifyintent.IntentOutlierDetection: outlierStrategy{},
		},
		fallback: generalStrategy{},
	}
}

// Register replaces or adds the strategy for an intent. Call it before the
// synthesizer is shared.
func (s *Synthesizer) Register(intent classifyintent.Intent, strategy Strategy) {
	s.strategies[intent] = strategy
}

// StrategyFor returns the strategy used for intent.
func (s *Synthesizer) StrategyFor(intent classifyintent.Intent) Strategy {
	if st, ok := s.strategies[intent]; ok {
		return st
	}
	return s.fallback
}

// Synthesize is total: unknown intents and empty datasets degrade to shorter
// or narrative-only responses.
func (s *Synthesizer) Synthesize(intent classifyintent.Intent, entities extractentities.Entities, dataset []models.Startup) Response {
	return s.StrategyFor(intent).Synthesize(entities, dataset)
}
