// internal/pulse/synthesize-response/models.go
package synthesizeresponse

import (
	"deal-pulse/internal/models"
	classifyintent "deal-pulse/internal/pulse/classify-intent"
)

// Kind discriminates the payload variants.
type Kind string

const (
	KindFundraising     Kind = "fundraising"
	KindSuccess         Kind = "success"
	KindRisk            Kind = "risk"
	KindSeriesA         Kind = "series_a"
	KindOutliers        Kind = "outliers"
	KindFounder         Kind = "founder"
	KindConviction      Kind = "conviction"
	KindNetwork         Kind = "network"
	KindCompetition     Kind = "competition"
	KindMarketExpansion Kind = "market_expansion"
	KindNone            Kind = "none"
)

var intentKinds = map[classifyintent.Intent]Kind{
	classifyintent.IntentFundraisingPrediction: KindFundraising,
	classifyintent.IntentFounderAnalysis:       KindFounder,
	classifyintent.IntentConvictionHistory:     KindConviction,
	classifyintent.IntentNetworkAnalysis:       KindNetwork,
	classifyintent.IntentSeriesAProbability:    KindSeriesA,
	classifyintent.IntentSuccessPrediction:     KindSuccess,
	classifyintent.IntentRiskPrediction:        KindRisk,
	classifyintent.IntentCompetitionPrediction: KindCompetition,
	classifyintent.IntentMarketExpansion:       KindMarketExpansion,
	classifyintent.IntentOutlierDetection:      KindOutliers,
	classifyintent.IntentGeneral:               KindNone,
}

// KindForIntent maps an intent to its payload kind. Unknown intents map to KindNone.
func KindForIntent(intent classifyintent.Intent) Kind {
	if k, ok := intentKinds[intent]; ok {
		return k
	}
	return KindNone
}

// Payload is the structured part of a response.
type Payload interface {
	PayloadKind() Kind
}

// KindOf returns the kind of p, or KindNone when p is nil.
func KindOf(p Payload) Kind {
	if p == nil {
		return KindNone
	}
	return p.PayloadKind()
}

// Response is the synthesizer output. Data is nil for the general intent.
type Response struct {
	Text string  `json:"text"`
	Data Payload `json:"data,omitempty"`
}

// FundraisingPrediction extends a startup copy with a raise probability.
type FundraisingPrediction struct {
	models.Startup
	Probability   int    `json:"probability"`
	ExpectedRound string `json:"expectedRound"`
}

type FundraisingPayload struct {
	Kind        Kind                    `json:"kind"`
	Sector      string                  `json:"sector"`
	Predictions []FundraisingPrediction `json:"predictions"`
}

func (p FundraisingPayload) PayloadKind() Kind { return KindFundraising }

// SuccessFactors are the sub-scores behind a success score.
type SuccessFactors struct {
	FounderQuality  int `json:"founderQuality"`
	MarketTiming    int `json:"marketTiming"`
	Traction        int `json:"traction"`
	NetworkStrength int `json:"networkStrength"`
}

type SuccessPrediction struct {
	models.Startup
	SuccessScore int            `json:"successScore"`
	Factors      SuccessFactors `json:"factors"`
}

type SuccessPayload struct {
	Kind        Kind                `json:"kind"`
	Predictions []SuccessPrediction `json:"predictions"`
}

func (p SuccessPayload) PayloadKind() Kind { return KindSuccess }

type RiskPrediction struct {
	models.Startup
	RiskScore   int      `json:"riskScore"`
	RiskFactors []string `json:"riskFactors"`
}

type RiskPayload struct {
	Kind        Kind             `json:"kind"`
	Predictions []RiskPrediction `json:"predictions"`
}

func (p RiskPayload) PayloadKind() Kind { return KindRisk }

type SeriesAPrediction struct {
	models.Startup
	Probability int      `json:"probability"`
	Factors     []string `json:"factors"`
}

type SeriesAPayload struct {
	Kind        Kind                `json:"kind"`
	Predictions []SeriesAPrediction `json:"predictions"`
}

func (p SeriesAPayload) PayloadKind() Kind { return KindSeriesA }

type Outlier struct {
	models.Startup
	Pattern    string `json:"pattern"`
	Confidence int    `json:"confidence"`
}

type OutliersPayload struct {
	Kind     Kind      `json:"kind"`
	Outliers []Outlier `json:"outliers"`
}

func (p OutliersPayload) PayloadKind() Kind { return KindOutliers }

type FounderPayload struct {
	Kind       Kind           `json:"kind"`
	Company    string         `json:"company"`
	Founder    models.Founder `json:"founder"`
	Background string         `json:"background"`
	Signals    []string       `json:"signals"`
}

func (p FounderPayload) PayloadKind() Kind { return KindFounder }

type ConvictionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Note  string `json:"note"`
}

type ConvictionPayload struct {
	Kind    Kind               `json:"kind"`
	Sector  string             `json:"sector"`
	Buckets []ConvictionBucket `json:"buckets"`
}

func (p ConvictionPayload) PayloadKind() Kind { return KindConviction }

type NetworkPayload struct {
	Kind         Kind             `json:"kind"`
	Connections  []models.Startup `json:"connections"`
	WarmIntros   int              `json:"warmIntros"`
	SecondDegree int              `json:"secondDegree"`
}

func (p NetworkPayload) PayloadKind() Kind { return KindNetwork }

// NarrativePayload tags narrative-only answers; it carries no structured data.
type NarrativePayload struct {
	Kind Kind `json:"kind"`
}

func (p NarrativePayload) PayloadKind() Kind { return p.Kind }
