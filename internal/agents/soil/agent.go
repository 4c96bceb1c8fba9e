package soil

import (
	"context"
	"strings"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

// Input is what the Orchestrator passes to the Soil Agent.
type Input struct {
	Query           string
	LocationContext domain.LocationContext
	District        string
	State           string
}

// Agent is the Soil Agent: parameter extraction, location fallback,
// scoring, and self-learning persistence.
type Agent struct {
	store  memory.Store
	logger core.Logger
}

// New builds a Soil Agent backed by the Learning Store.
func New(store memory.Store, logger core.Logger) *Agent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Agent{store: store, logger: logger}
}

// DefaultResult is the surrogate Soil Result used both when the Soil Agent
// panics and when the Orchestrator needs a stand-in because the agent was
// never invoked or failed outright.
func DefaultResult() *domain.SoilResult {
	return &domain.SoilResult{
		SoilType:         "loam",
		PHLevel:          7.0,
		HealthScore:      5.0,
		HealthConfidence: 0.2,
		Characteristics:  domain.SoilCharacteristics(knowledge.SoilCharacteristicsTable["loam"]),
		Constraints:      []string{},
		Recommendations:  []string{},
		DataSources:      []string{"default_fallback"},
		DataFreshness:    "default",
	}
}

// Analyze never returns an error: unexpected internal failures still
// produce a default-filled Soil Result so downstream agents can proceed
//.
func (a *Agent) Analyze(ctx context.Context, in Input) (result *domain.SoilResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("soil agent panic recovered", map[string]interface{}{"panic": r})
			result = DefaultResult()
		}
	}()
	return a.analyze(in)
}

func (a *Agent) analyze(in Input) *domain.SoilResult {
	var dataSources []string

	soilType, soilTypeFromQuery := extractSoilType(in.Query)
	ph, phFromQuery := extractPH(in.Query)
	n, p, k := extractNPK(in.Query)
	om, omFromQuery := extractOrganicMatter(in.Query)
	micros := extractMicronutrients(in.Query)

	hasUserData := soilTypeFromQuery || phFromQuery || n > 0 || p > 0 || k > 0 || omFromQuery || len(micros) > 0
	if hasUserData {
		dataSources = append(dataSources, "user_query")
	}

	fallbackLevel, fallbackConfidence := "default", 0.3
	profileSoilType, profilePH, profileOM := "loam", 7.0, 0.5

	if !soilTypeFromQuery || !phFromQuery || !omFromQuery {
		region, level, conf, profile := a.resolveLocationProfile(in.District, in.State)
		fallbackLevel, fallbackConfidence = level, conf
		if profile != nil {
			profileSoilType, profilePH, profileOM = profile.SoilType, profile.PH, profile.OrganicMatterFrac
		}
		_ = region
	}

	if !soilTypeFromQuery {
		soilType = profileSoilType
	}
	if soilType == "" {
		soilType = "unknown"
	}
	if !phFromQuery {
		ph = profilePH
		phFromQuery = true
	}
	if !omFromQuery {
		om = profileOM
		omFromQuery = true
	}

	if fallbackLevel != "default" {
		dataSources = append(dataSources, fallbackLevel)
	} else if !hasUserData {
		dataSources = append(dataSources, "default_fallback")
	}

	healthScoreVal, healthConfidence := healthScore(soilType, ph, phFromQuery, om, omFromQuery, n, p, k)
	constraints := identifyConstraints(soilType, ph, phFromQuery, om, omFromQuery, n, p, k)
	recommendations := generateRecommendations(soilType, ph, phFromQuery, om, omFromQuery, n, p, k)

	characteristics := domain.SoilCharacteristics{}
	if sc, ok := knowledge.SoilCharacteristicsTable[soilType]; ok {
		characteristics = domain.SoilCharacteristics{
			Drainage: sc.Drainage, WaterRetention: sc.WaterRetention,
			Workability: sc.Workability, NutrientRetention: sc.NutrientRetention,
		}
	}

	micronutrients := make(map[string]domain.Micronutrient, len(micros))
	for name, reading := range micros {
		micronutrients[name] = domain.Micronutrient{
			Value: reading.value, Unit: "ppm", Status: reading.status, Source: reading.source,
		}
	}

	freshness := "default"
	switch {
	case hasUserData:
		freshness = "user_provided"
	case fallbackLevel == "learned_district" || fallbackLevel == "learned_state":
		freshness = "historical"
	case fallbackLevel == "static_state" || fallbackLevel == "static_pincode":
		freshness = "estimated"
	}

	result := &domain.SoilResult{
		SoilType:              soilType,
		PHLevel:                ph,
		NitrogenPPM:            n,
		PhosphorusPPM:          p,
		PotassiumPPM:           k,
		OrganicMatterFraction: om,
		Micronutrients:         micronutrients,
		Characteristics:        characteristics,
		HealthScore:            healthScoreVal,
		HealthConfidence:       healthConfidence,
		Constraints:            constraints,
		Recommendations:        recommendations,
		DataSources:            dedup(dataSources),
		DataFreshness:          freshness,
		LocationContext:        in.LocationContext,
	}

	a.maybeLearn(result, in.District, in.State, dataSources)
	return result
}

// resolveLocationProfile implements the district → state → default fallback
// through the Learning Store then Regional Soil Profiles.
func (a *Agent) resolveLocationProfile(district, state string) (region string, level string, confidence float64, profile *memory.SoilProfile) {
	if district != "" {
		if p, ok := a.store.GetSoilProfile(district); ok {
			return district, "learned_district", 0.75, p
		}
	}
	if state != "" {
		if p, ok := a.store.GetSoilProfile(state); ok {
			return state, "learned_state", 0.7, p
		}
	}
	if state != "" {
		key := normalizeKey(state)
		if rp, ok := knowledge.RegionalSoilProfiles[key]; ok {
			return state, "static_state", 0.6, &memory.SoilProfile{
				SoilType: rp.SoilType, PH: rp.PH, Fertility: rp.Fertility, OrganicMatterFrac: rp.OrganicMatterFraction,
			}
		}
	}
	def := knowledge.RegionalSoilProfiles["default"]
	return "default", "default", 0.3, &memory.SoilProfile{
		SoilType: def.SoilType, PH: def.PH, Fertility: def.Fertility, OrganicMatterFrac: def.OrganicMatterFraction,
	}
}

// maybeLearn persists the extracted profile when the self-learning
// conditions here are met; failures are swallowed.
func (a *Agent) maybeLearn(result *domain.SoilResult, district, state string, dataSources []string) {
	hasUserQuery := false
	for _, s := range dataSources {
		if s == "user_query" {
			hasUserQuery = true
			break
		}
	}
	if !hasUserQuery || result.HealthConfidence < 0.5 || result.SoilType == "unknown" {
		return
	}
	region := district
	if region == "" {
		region = state
	}
	if region == "" {
		return
	}

	profile := memory.SoilProfile{
		SoilType: result.SoilType, PH: result.PHLevel,
		Fertility: fertilityFromHealth(result.HealthScore), OrganicMatterFrac: result.OrganicMatterFraction,
	}
	a.store.SaveSoilProfile(region, profile, "user_query_extracted")
}

func fertilityFromHealth(score float64) string {
	switch {
	case score >= 7:
		return "high"
	case score >= 4:
		return "medium"
	default:
		return "low"
	}
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
