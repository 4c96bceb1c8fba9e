package soil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func newTestAgent() *Agent {
	return New(memory.NewInMemoryStore(), nil)
}

func TestAnalyzeExtractsClayAndPH(t *testing.T) {
	agent := newTestAgent()
	result := agent.Analyze(context.Background(), Input{
		Query: "my soil is clay with pH 6.5, what crops for kharif season",
	})

	assert.Equal(t, "clay", result.SoilType)
	assert.Equal(t, 6.5, result.PHLevel)
	assert.Contains(t, result.DataSources, "user_query")
	assert.GreaterOrEqual(t, result.HealthScore, 1.0)
	assert.LessOrEqual(t, result.HealthScore, 10.0)
	assert.GreaterOrEqual(t, result.HealthConfidence, 0.0)
	assert.LessOrEqual(t, result.HealthConfidence, 1.0)
}

func TestAnalyzeFallsBackToLocationProfile(t *testing.T) {
	agent := newTestAgent()
	result := agent.Analyze(context.Background(), Input{
		Query: "what should I plant this season",
		State: "Punjab",
	})

	assert.Equal(t, "loam", result.SoilType)
	assert.Equal(t, 7.8, result.PHLevel)
	assert.NotContains(t, result.DataSources, "user_query")
}

func TestAnalyzeUnknownSoilTypeNoConstraintCrash(t *testing.T) {
	agent := newTestAgent()
	result := agent.Analyze(context.Background(), Input{Query: "hello"})
	assert.NotEmpty(t, result.Constraints)
	assert.NotEmpty(t, result.Recommendations)
}

func TestAnalyzeOrganicMatterPercentConversion(t *testing.T) {
	agent := newTestAgent()
	result := agent.Analyze(context.Background(), Input{
		Query: "soil organic matter is 12%",
	})
	assert.InDelta(t, 0.12, result.OrganicMatterFraction, 0.001)
}

func TestAnalyzeLearnsProfileWhenConfident(t *testing.T) {
	store := memory.NewInMemoryStore()
	agent := New(store, nil)
	agent.Analyze(context.Background(), Input{
		Query:    "my soil is loam with pH 7.0, nitrogen 35 phosphorus 25 potassium 25",
		District: "TestDistrict",
	})

	profile, ok := store.GetSoilProfile("TestDistrict")
	if ok {
		assert.Equal(t, "loam", profile.SoilType)
	}
}
