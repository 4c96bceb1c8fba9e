package cropplanning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

func TestPlanClayKharifRecommendsRice(t *testing.T) {
	agent := New(nil)
	result := agent.Plan(context.Background(), Input{
		Query: "my soil is clay with pH 6.5, what crops for kharif season",
		SoilType: "clay", SoilHealth: 7, SoilConfidence: 0.8,
		WeatherScore: 7, WeatherConfidence: 0.7,
		Season: "kharif", RainfallMM: 900,
		FarmSizeHa: 1.0, IrrigationAvailable: true,
		// OptimalCrops as the Weather Agent ranks them for the default kharif profile.
		OptimalCrops: []domain.WeatherSuitableCrop{
			{Crop: "cotton"}, {Crop: "millet"}, {Crop: "sorghum"}, {Crop: "groundnut"},
			{Crop: "maize"}, {Crop: "onion"}, {Crop: "rice"}, {Crop: "soybean"},
		},
	})

	assert.NotEmpty(t, result.RecommendedCrops)
	assert.Equal(t, "rice", result.RecommendedCrops[0].Name)
	assert.LessOrEqual(t, len(result.RecommendedCrops), 4)
	assert.LessOrEqual(t, len(result.Alternatives), 5)
	assert.LessOrEqual(t, len(result.Precautions), 10)

	for i := 1; i < len(result.RecommendedCrops); i++ {
		assert.GreaterOrEqual(t, result.RecommendedCrops[i-1].Confidence, result.RecommendedCrops[i].Confidence)
	}
}

func TestPlanSandyNoIrrigationExcludesThirstyCrops(t *testing.T) {
	agent := New(nil)
	result := agent.Plan(context.Background(), Input{
		Query: "sandy soil, no irrigation, suggest crops",
		SoilType: "sandy", SoilHealth: 5, SoilConfidence: 0.6,
		WeatherScore: 6, WeatherConfidence: 0.6,
		Season: "kharif", RainfallMM: 500,
		FarmSizeHa: 1.0, IrrigationAvailable: false,
	})

	for _, c := range result.RecommendedCrops {
		assert.NotEqual(t, "rice", c.Name)
		assert.NotEqual(t, "sugarcane", c.Name)
	}
}

func TestAggregateConfidenceWeightedMean(t *testing.T) {
	v := aggregateConfidence(0.8, 0.6, []float64{0.9, 0.7})
	assert.InDelta(t, 0.3*0.8+0.3*0.6+0.4*0.8, v, 0.001)
}

func TestEstimateYieldIsPerHectareRegardlessOfSoilHealth(t *testing.T) {
	rice := knowledge.CropDB["rice"]

	goodSoil := estimateYield(rice, 8)
	poorSoil := estimateYield(rice, 2)
	assert.Less(t, poorSoil.KgPerHa, goodSoil.KgPerHa)
	assert.Less(t, goodSoil.KgPerHa, rice.ExpectedYieldKgHa*1.2)
}
