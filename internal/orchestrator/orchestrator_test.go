package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/internal/agents/cropplanning"
	"github.com/subham11/farmer-advisor-go/internal/agents/soil"
	"github.com/subham11/farmer-advisor-go/internal/agents/weather"
	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/location"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func newTestOrchestrator() *Orchestrator {
	store := memory.NewInMemoryStore()
	resolver := location.NewResolver(store, nil, nil, nil)
	soilAgent := soil.New(store, nil)
	weatherAgent := weather.New(resolver, nil, store, nil)
	cropAgent := cropplanning.New(nil)
	return New(soilAgent, weatherAgent, cropAgent, nil, nil, nil)
}

func TestRunClayKharifRecommendsRice(t *testing.T) {
	o := newTestOrchestrator()
	result := o.Run(context.Background(), Query{
		Query: "my soil is clay with pH 6.5, what crops for kharif season",
	})

	assert.Empty(t, result.AgentErrors)
	assert.Contains(t, result.AgentsInvoked, "soil")
	assert.Contains(t, result.AgentsInvoked, "weather")
	assert.Contains(t, result.AgentsInvoked, "crop_planning")
	assert.Equal(t, "clay", result.SoilResult.SoilType)
	assert.Equal(t, 6.5, result.SoilResult.PHLevel)
	assert.Equal(t, "kharif", result.WeatherResult.Season)
	if assert.NotEmpty(t, result.CropPlan.RecommendedCrops) {
		assert.Equal(t, "rice", result.CropPlan.RecommendedCrops[0].Name)
	}
	assert.GreaterOrEqual(t, result.OverallConfidence, 0.1)
	assert.LessOrEqual(t, result.OverallConfidence, 1.0)
	assert.Contains(t, result.LLMPromptInput, "SOIL ANALYSIS")
	assert.Contains(t, result.LLMPromptInput, "WEATHER ANALYSIS")
	assert.Contains(t, result.LLMPromptInput, "CROP RECOMMENDATIONS")
}

func TestRunSandyNoIrrigationExcludesThirstyCrops(t *testing.T) {
	o := newTestOrchestrator()
	result := o.Run(context.Background(), Query{
		Query:       "sandy soil, no irrigation, suggest crops",
		UserProfile: &domain.UserProfile{IrrigationAvailable: false},
	})

	for _, crop := range result.CropPlan.RecommendedCrops {
		assert.NotEqual(t, "rice", crop.Name)
		assert.NotEqual(t, "sugarcane", crop.Name)
	}
}

func TestRunUnknownPincodeKnownStateNoCrash(t *testing.T) {
	o := newTestOrchestrator()
	result := o.Run(context.Background(), Query{
		Query:   "what crops should I plant",
		Pincode: "999999",
		State:   "Punjab",
	})

	assert.NotNil(t, result)
	assert.Contains(t, []string{"static_state", "default"}, result.WeatherResult.LocationContext.FallbackLevel)
}

func TestRunAllDefaultsNeverPanics(t *testing.T) {
	o := New(nil, nil, nil, nil, nil, nil)
	result := o.Run(context.Background(), Query{Query: "tell me about crops"})

	assert.NotNil(t, result)
	assert.GreaterOrEqual(t, result.OverallConfidence, 0.1)
	assert.NotEmpty(t, result.LLMPromptInput)
}

func TestOverallConfidenceClampedAndPenalized(t *testing.T) {
	c := overallConfidence(true, true, true, 0.9, 0.9, 0.9, 0.9, 0)
	assert.InDelta(t, 0.9, c, 0.01)

	penalized := overallConfidence(true, true, true, 0.9, 0.9, 0.9, 0.9, 10)
	assert.Equal(t, 0.1, penalized)
}

func TestOverallConfidenceExcludesNonInvokedFromDenominator(t *testing.T) {
	// crop not invoked: renormalized over soil+weather+intent weights only.
	c := overallConfidence(true, true, false, 0.9, 0.9, 0.0, 0.9, 0)
	assert.InDelta(t, 0.9, c, 0.01)
}
