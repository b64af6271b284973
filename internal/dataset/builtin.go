package dataset

import (
	"context"

	"deal-pulse/internal/models"
)

var builtinStartups = []models.Startup{
	{ID: "1", Name: "Neuron Labs", Sector: "AI", Stage: "Seed", Founders: []models.Founder{
		{Name: "Sarah Chen", Background: "Ex-Google Brain researcher, Stanford PhD"},
		{Name: "David Kim", Background: "Former ML lead at Tesla Autopilot"},
	}},
	{ID: "2", Name: "PayFlow", Sector: "Fintech", Stage: "Series A", Founders: []models.Founder{
		{Name: "Marcus Webb", Background: "Ex-Stripe engineering manager"},
	}},
	{ID: "3", Name: "MedSight", Sector: "HealthTech", Stage: "Seed", Founders: []models.Founder{
		{Name: "Priya Patel", Background: "MD, former Mayo Clinic radiologist"},
	}},
	{ID: "4", Name: "CloudDesk", Sector: "SaaS", Stage: "Series A", Founders: []models.Founder{
		{Name: "Tom Alvarez", Background: "Second-time founder, prior exit to Atlassian"},
	}},
	{ID: "5", Name: "CarbonTrack", Sector: "Climate", Stage: "Seed", Founders: []models.Founder{
		{Name: "Elena Novak", Background: "Former carbon markets analyst at BloombergNEF"},
	}},
	{ID: "6", Name: "VectorMind", Sector: "AI", Stage: "Series A", Founders: []models.Founder{
		{Name: "Leo Park", Background: "Ex-OpenAI research engineer"},
	}},
	{ID: "7", Name: "LendStack", Sector: "Fintech", Stage: "Seed", Founders: []models.Founder{
		{Name: "Amara Okafor", Background: "Former credit risk lead at Square"},
	}},
	{ID: "8", Name: "GridWise", Sector: "Climate", Stage: "Series B", Founders: []models.Founder{
		{Name: "Jonas Berg", Background: "Grid operations engineer, ex-Vattenfall"},
	}},
}

// Builtin returns a fresh copy of the bundled demo portfolio.
func Builtin() []models.Startup {
	out := make([]models.Startup, len(builtinStartups))
	for i, s := range builtinStartups {
		out[i] = s.Clone()
	}
	return out
}

type BuiltinSource struct{}

func (BuiltinSource) Name() string { return "builtin" }

func (BuiltinSource) Load(context.Context) ([]models.Startup, error) {
	return Builtin(), nil
}
