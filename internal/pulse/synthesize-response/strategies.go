package synthesizeresponse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"deal-pulse/internal/models"
	extractentities "deal-pulse/internal/pulse/extract-entities"
)

// Strategy turns entities and the reference dataset into a response. A
// strategy never mutates the dataset; every returned record is a copy.
type Strategy interface {
	Synthesize(entities extractentities.Entities, dataset []models.Startup) Response
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(entities extractentities.Entities, dataset []models.Startup) Response

func (f StrategyFunc) Synthesize(entities extractentities.Entities, dataset []models.Startup) Response {
	return f(entities, dataset)
}

const (
	DefaultFundraisingSector = "AI"
	DefaultConvictionSector  = "fintech"

	fundraisingLimit = 4
	seriesALimit     = 5
	successLimit     = 5
	riskLimit        = 4
	networkLimit     = 5
)

var (
	RiskFactorVocabulary = []string{
		"High burn rate",
		"Founder turnover",
		"Market saturation",
		"Customer concentration",
		"Regulatory exposure",
	}

	seriesAFactors = []string{"Revenue growth", "Team strength", "Market size"}

	outlierSlots = []struct {
		pattern    string
		confidence int
	}{
		{"Revenue growth far ahead of stage peers", 94},
		{"Repeat founders entering a new category", 89},
		{"Inbound investor interest without outreach", 87},
	}

	placeholderFounder = models.Founder{
		Name:       "Unknown founder",
		Background: "No founder data available",
	}
)

type fundraisingStrategy struct{ score Scorer }

func (s fundraisingStrategy) Synthesize(entities extractentities.Entities, dataset []models.Startup) Response {
	sector := entities.SectorOr(DefaultFundraisingSector)
	needle := strings.ToLower(sector)

	matched := lo.Filter(dataset, func(st models.Startup, _ int) bool {
		return strings.Contains(strings.ToLower(st.Sector), needle)
	})
	if len(matched) == 0 {
		matched = dataset
	}

	predictions := lo.Map(lo.Slice(matched, 0, fundraisingLimit), func(st models.Startup, _ int) FundraisingPrediction {
		return FundraisingPrediction{
			Startup:       st.Clone(),
			Probability:   FundraisingProbabilityBounds.sample(s.score),
			ExpectedRound: expectedRound(st.Stage),
		}
	})

	return Response{
		Text: "Here are the companies likely to raise next quarter:",
		Data: FundraisingPayload{Kind: KindFundraising, Sector: sector, Predictions: predictions},
	}
}

func expectedRound(stage string) string {
	if stage == models.StageSeed {
		return "Series A"
	}
	return "Series B"
}

type successStrategy struct{ score Scorer }

func (s successStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	predictions := lo.Map(dataset, func(st models.Startup, _ int) SuccessPrediction {
		return SuccessPrediction{
			Startup:      st.Clone(),
			SuccessScore: SuccessScoreBounds.sample(s.score),
			Factors: SuccessFactors{
				FounderQuality:  FounderQualityBounds.sample(s.score),
				MarketTiming:    MarketTimingBounds.sample(s.score),
				Traction:        TractionBounds.sample(s.score),
				NetworkStrength: NetworkStrengthBounds.sample(s.score),
			},
		}
	})
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].SuccessScore > predictions[j].SuccessScore
	})

	return Response{
		Text: "These founders show the highest probability of success:",
		Data: SuccessPayload{Kind: KindSuccess, Predictions: lo.Slice(predictions, 0, successLimit)},
	}
}

type riskStrategy struct{ score Scorer }

func (s riskStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	predictions := lo.Map(lo.Slice(dataset, 0, riskLimit), func(st models.Startup, _ int) RiskPrediction {
		return RiskPrediction{
			Startup:     st.Clone(),
			RiskScore:   RiskScoreBounds.sample(s.score),
			RiskFactors: s.riskFactors(),
		}
	})

	return Response{
		Text: "Risk analysis for selected startups:",
		Data: RiskPayload{Kind: KindRisk, Predictions: predictions},
	}
}

// riskFactors picks one or two consecutive vocabulary entries from a scored start.
func (s riskStrategy) riskFactors() []string {
	n := len(RiskFactorVocabulary)
	count := RiskFactorCountBounds.sample(s.score)
	start := Bounds{0, n - 1}.sample(s.score)
	out := make([]string, 0, count)
	for k := 0; k < count; k++ {
		out = append(out, RiskFactorVocabulary[(start+k)%n])
	}
	return out
}

type seriesAStrategy struct{ score Scorer }

func (s seriesAStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	predictions := lo.Map(lo.Slice(dataset, 0, seriesALimit), func(st models.Startup, _ int) SeriesAPrediction {
		return SeriesAPrediction{
			Startup:     st.Clone(),
			Probability: SeriesAProbabilityBounds.sample(s.score),
			Factors:     append([]string(nil), seriesAFactors...),
		}
	})

	return Response{
		Text: "Series A probability for your pipeline:",
		Data: SeriesAPayload{Kind: KindSeriesA, Predictions: predictions},
	}
}

type outlierStrategy struct{}

func (outlierStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	n := min(len(dataset), len(outlierSlots))
	outliers := make([]Outlier, 0, n)
	for i := 0; i < n; i++ {
		outliers = append(outliers, Outlier{
			Startup:    dataset[i].Clone(),
			Pattern:    outlierSlots[i].pattern,
			Confidence: outlierSlots[i].confidence,
		})
	}

	return Response{
		Text: "Here are unusual patterns in your deal flow:",
		Data: OutliersPayload{Kind: KindOutliers, Outliers: outliers},
	}
}

type founderStrategy struct{}

func (founderStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	company := "Unknown company"
	founder := placeholderFounder
	if len(dataset) > 0 {
		company = dataset[0].Name
		if len(dataset[0].Founders) > 0 {
			founder = dataset[0].Founders[0]
		}
	}

	return Response{
		Text: fmt.Sprintf("Here's why %s stands out as a founder:", founder.Name),
		Data: FounderPayload{
			Kind:       KindFounder,
			Company:    company,
			Founder:    founder,
			Background: founder.Background,
			Signals: []string{
				"Deep domain expertise",
				"Previous successful exit",
				"Strong technical network",
			},
		},
	}
}

type convictionStrategy struct{}

func (convictionStrategy) Synthesize(entities extractentities.Entities, _ []models.Startup) Response {
	sector := entities.SectorOr(DefaultConvictionSector)

	return Response{
		Text: fmt.Sprintf("Here's our conviction history on %s deals:", sector),
		Data: ConvictionPayload{
			Kind:   KindConviction,
			Sector: sector,
			Buckets: []ConvictionBucket{
				{Label: "High conviction", Count: 4, Note: "Invested and led or co-led the round"},
				{Label: "Medium conviction", Count: 7, Note: "Took a meeting, passed after diligence"},
				{Label: "Missed", Count: 2, Note: "Passed early and the company outperformed"},
			},
		},
	}
}

type networkStrategy struct{}

func (networkStrategy) Synthesize(_ extractentities.Entities, dataset []models.Startup) Response {
	connections := lo.Map(lo.Slice(dataset, 0, networkLimit), func(st models.Startup, _ int) models.Startup {
		return st.Clone()
	})

	return Response{
		Text: "Here's who in your network can make introductions:",
		Data: NetworkPayload{
			Kind:         KindNetwork,
			Connections:  connections,
			WarmIntros:   12,
			SecondDegree: 38,
		},
	}
}

func narrative(kind Kind, text string) Strategy {
	return StrategyFunc(func(extractentities.Entities, []models.Startup) Response {
		return Response{Text: text, Data: NarrativePayload{Kind: kind}}
	})
}

const generalText = "How can I help you with your deal flow? Try asking about fundraising, " +
	"founder success, risk, Series A odds, conviction history, your network or outliers."

type generalStrategy struct{}

func (generalStrategy) Synthesize(extractentities.Entities, []models.Startup) Response {
	return Response{Text: generalText}
}
