package chatsession

import (
	"deal-pulse/internal/models"
	classifyintent "deal-pulse/internal/pulse/classify-intent"
	extractentities "deal-pulse/internal/pulse/extract-entities"
	synthesizeresponse "deal-pulse/internal/pulse/synthesize-response"
)

// Answer is the full result of running one query through the pipeline.
type Answer struct {
	Intent   classifyintent.Intent
	Entities extractentities.Entities
	Response synthesizeresponse.Response
}

// Engine runs classify, extract and synthesize. It holds no per-session
// state and may be shared by any number of sessions.
type Engine struct {
	extractor   *extractentities.Extractor
	synthesizer *synthesizeresponse.Synthesizer
}

func NewEngine(score synthesizeresponse.Scorer) (*Engine, error) {
	extractor, err := extractentities.NewExtractor()
	if err != nil {
		return nil, err
	}
	return &Engine{
		extractor:   extractor,
		synthesizer: synthesizeresponse.NewSynthesizer(score),
	}, nil
}

func (e *Engine) Answer(query string, dataset []models.Startup) Answer {
	intent := classifyintent.Classify(query)
	entities := e.extractor.Extract(query)
	return Answer{
		Intent:   intent,
		Entities: entities,
		Response: e.synthesizer.Synthesize(intent, entities, dataset),
	}
}
