package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/location"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func newTestAgent() *Agent {
	store := memory.NewInMemoryStore()
	resolver := location.NewResolver(store, nil, nil, core.NoOpLogger{})
	return New(resolver, nil, store, core.NoOpLogger{})
}

func TestDetermineSeasonKeywordMatch(t *testing.T) {
	assert.Equal(t, "kharif", determineSeason("what to plant in kharif season", time.Now()))
	assert.Equal(t, "rabi", determineSeason("rabi crop suggestions", time.Now()))
}

func TestDetermineSeasonFallsBackToMonth(t *testing.T) {
	july := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "kharif", determineSeason("generic query", july))

	january := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "rabi", determineSeason("generic query", january))
}

func TestAnalyzeHistoricalFallback(t *testing.T) {
	agent := newTestAgent()
	result := agent.Analyze(context.Background(), Input{
		Query: "my soil is clay with pH 6.5, what crops for kharif season",
		State: "Punjab",
	})

	assert.Equal(t, "kharif", result.Season)
	assert.GreaterOrEqual(t, result.SuitabilityScore, 1.0)
	assert.LessOrEqual(t, result.SuitabilityScore, 10.0)
	assert.LessOrEqual(t, len(result.OptimalCrops), 8)
	assert.Equal(t, "historical", result.DataFreshness)
}

func TestRainfallPatternBuckets(t *testing.T) {
	assert.Equal(t, "very_heavy", rainfallPattern(1600))
	assert.Equal(t, "heavy", rainfallPattern(900))
	assert.Equal(t, "moderate", rainfallPattern(500))
	assert.Equal(t, "light", rainfallPattern(150))
	assert.Equal(t, "scanty", rainfallPattern(50))
}
