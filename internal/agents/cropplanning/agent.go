package cropplanning

import (
	"context"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/domain"
)

// Input is what the Orchestrator passes to the Crop-Planning Agent: the
// Soil and Weather results (real or default-substituted) plus user
// context.
type Input struct {
	Query               string
	SoilType            string
	SoilHealth          float64
	SoilConfidence      float64
	SoilConstraints     []string
	WeatherScore        float64
	WeatherConfidence   float64
	Season              string
	RainfallMM          float64
	RiskAssessment      domain.RiskAssessment
	OptimalCrops        []domain.WeatherSuitableCrop
	FarmSizeHa          float64
	IrrigationAvailable bool
}

// Agent is the Crop-Planning Agent.
type Agent struct {
	logger core.Logger
}

// New builds a Crop-Planning Agent.
func New(logger core.Logger) *Agent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Agent{logger: logger}
}

// DefaultResult is the surrogate Crop-Plan Result used when the
// Crop-Planning Agent panics: empty recommendations rather than a crash.
func DefaultResult() *domain.CropPlanResult {
	return &domain.CropPlanResult{
		RecommendedCrops:  []domain.RecommendedCrop{},
		Alternatives:      []domain.Alternative{},
		Risks:             []domain.Risk{},
		Precautions:       []domain.Precaution{},
		OverallConfidence: 0.2,
		PlanningFactors:   []string{"default_fallback"},
	}
}

// Plan never returns an error: unexpected internal failures still produce
// a default-filled Crop-Plan Result.
func (a *Agent) Plan(ctx context.Context, in Input) (result *domain.CropPlanResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("crop planning agent panic recovered", map[string]interface{}{"panic": r})
			result = DefaultResult()
		}
	}()
	return a.plan(in)
}

func (a *Agent) plan(in Input) *domain.CropPlanResult {
	farmSize := in.FarmSizeHa
	if farmSize <= 0 {
		farmSize = 1.0
	}

	candidates := selectCandidates(in.SoilType, in.IrrigationAvailable, in.SoilHealth, in.SoilConfidence, in.WeatherScore, in.WeatherConfidence, in.OptimalCrops)

	recommendedSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		recommendedSet[c.crop.Name] = true
	}

	recommended := make([]domain.RecommendedCrop, 0, len(candidates))
	var cropConfidences []float64
	for _, c := range candidates {
		yieldInfo := estimateYield(c.crop, in.SoilHealth)
		recommended = append(recommended, domain.RecommendedCrop{
			Name:             c.crop.Name,
			Confidence:       c.confidence,
			Reasoning:        generateReasoning(c.crop, in.SoilType, in.RainfallMM),
			ExpectedYield:    yieldInfo,
			DurationMonths:   cropDuration(c.crop.Name, c.crop),
			WaterRequirement: string(c.crop.WaterRequirement),
			MSPAvailable:     c.crop.MSP2024 != nil,
			Economics:        calculateEconomics(c.crop, farmSize),
			Varieties:        varietyRecommendations(c.crop, in.RiskAssessment.Drought.Level, in.RiskAssessment.Frost.Level, in.SoilHealth),
			GovernmentSchemes: schemesFor(c.crop),
		})
		cropConfidences = append(cropConfidences, c.confidence)
	}

	risks := assessRisks(in.SoilConstraints, in.RiskAssessment)
	precautions := suggestPrecautions(risks)
	alts := alternatives(in.Season, in.SoilType, recommendedSet)

	overall := aggregateConfidence(in.SoilConfidence, in.WeatherConfidence, cropConfidences)

	planningFactors := []string{
		"soil_type:" + in.SoilType,
		"season:" + in.Season,
		"irrigation_available:" + boolString(in.IrrigationAvailable),
	}

	return &domain.CropPlanResult{
		RecommendedCrops:  recommended,
		Alternatives:      alts,
		Risks:             risks,
		Precautions:       precautions,
		OverallConfidence: overall,
		PlanningFactors:   planningFactors,
	}
}

// aggregateConfidence is the exact weighted formula here "Overall
// confidence".
func aggregateConfidence(soilConfidence, weatherConfidence float64, cropConfidences []float64) float64 {
	var cropMean float64
	if len(cropConfidences) > 0 {
		var sum float64
		for _, c := range cropConfidences {
			sum += c
		}
		cropMean = sum / float64(len(cropConfidences))
	}
	return round2(0.3*soilConfidence + 0.3*weatherConfidence + 0.4*cropMean)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
