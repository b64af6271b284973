package classifyintent

import "strings"

// predicate is evaluated against the lower-cased query.
type predicate func(lower string) bool

type rule struct {
	intent Intent
	match  predicate
}

func anyOf(needles ...string) predicate {
	return func(lower string) bool {
		for _, n := range needles {
			if strings.Contains(lower, n) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...predicate) predicate {
	return func(lower string) bool {
		for _, p := range preds {
			if !p(lower) {
				return false
			}
		}
		return true
	}
}

// rules is evaluated top to bottom and the first match wins. The founder rule
// sits above risk so "why is this founder exceptional despite the risk"
// resolves to founder analysis.
var rules = []rule{
	{IntentFundraisingPrediction, anyOf("raising", "fundraising")},
	{IntentFounderAnalysis, allOf(anyOf("founder"), anyOf("exceptional", "why"))},
	{IntentConvictionHistory, anyOf("conviction", "history")},
	{IntentNetworkAnalysis, anyOf("network", "knows")},
	{IntentSeriesAProbability, anyOf("probability", "series a")},
	{IntentSuccessPrediction, anyOf("likely to succeed", "winners")},
	{IntentRiskPrediction, anyOf("risk", "failure")},
	{IntentCompetitionPrediction, anyOf("competitive", "hot")},
	{IntentMarketExpansion, allOf(anyOf("market"), anyOf("expanding"))},
	{IntentOutlierDetection, anyOf("outlier", "unusual")},
}

// Classify maps a query to exactly one intent. It is pure and total: blank
// or unmatched input yields IntentGeneral.
func Classify(query string) Intent {
	lower := strings.ToLower(query)
	if strings.TrimSpace(lower) == "" {
		return IntentGeneral
	}
	for _, r := range rules {
		if r.match(lower) {
			return r.intent
		}
	}
	return IntentGeneral
}
