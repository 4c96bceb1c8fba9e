package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSoilQuerySelectsSoil(t *testing.T) {
	result := Analyze("my soil has low ph and clay texture", nil)
	assert.Contains(t, result.Agents, "soil")
}

func TestAnalyzeCropPlanningPullsInSoilAndWeather(t *testing.T) {
	result := Analyze("what crop should I grow this season for best yield", nil)
	assert.Contains(t, result.Agents, "crop_planning")
	assert.Contains(t, result.Agents, "soil")
	assert.Contains(t, result.Agents, "weather")
}

func TestAnalyzeDefaultsWhenNothingMatches(t *testing.T) {
	result := Analyze("hello there", nil)
	assert.True(t, result.IsDefaultSelection)
	assert.ElementsMatch(t, []string{"soil", "weather", "crop_planning"}, result.Agents)
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	result := Analyze("soil ph nitrogen phosphorus potassium clay", nil)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.6)
}

func TestAnalyzePreviousQueryContinuity(t *testing.T) {
	result := Analyze("tell me more", []string{"what is my soil type"})
	assert.Contains(t, result.Agents, "soil")
}
