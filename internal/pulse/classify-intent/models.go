// internal/pulse/classify-intent/models.go
package classifyintent

// Intent is the closed set of query categories.
type Intent string

const (
	IntentFundraisingPrediction Intent = "fundraising_prediction"
	IntentFounderAnalysis       Intent = "founder_analysis"
	IntentConvictionHistory     Intent = "conviction_history"
	IntentNetworkAnalysis       Intent = "network_analysis"
	IntentSeriesAProbability    Intent = "series_a_probability"
	IntentSuccessPrediction     Intent = "success_prediction"
	IntentRiskPrediction        Intent = "risk_prediction"
	IntentCompetitionPrediction Intent = "competition_prediction"
	IntentMarketExpansion       Intent = "market_expansion"
	IntentOutlierDetection      Intent = "outlier_detection"
	IntentGeneral               Intent = "general"
)

// AllIntents lists every intent in rule-table order, general last.
var AllIntents = []Intent{
	IntentFundraisingPrediction,
	IntentFounderAnalysis,
	IntentConvictionHistory,
	IntentNetworkAnalysis,
	IntentSeriesAProbability,
	IntentSuccessPrediction,
	IntentRiskPrediction,
	IntentCompetitionPrediction,
	IntentMarketExpansion,
	IntentOutlierDetection,
	IntentGeneral,
}

func (i Intent) String() string {
	return string(i)
}

// Valid reports whether i belongs to the closed set.
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}
