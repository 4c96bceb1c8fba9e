// Package orchestrator composes the Intent Router and the three agents
// into one Orchestrator Result: it fans Soil and Weather out concurrently,
// runs Crop-Planning happens-after both (real or default-surrogate
// inputs), and aggregates confidence, freshness, and the LLM prompt
// template.
package orchestrator

import (
	"context"
	"sort"
	"sync"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/agents/cropplanning"
	"github.com/subham11/farmer-advisor-go/internal/agents/soil"
	"github.com/subham11/farmer-advisor-go/internal/agents/weather"
	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/intent"
	"github.com/subham11/farmer-advisor-go/internal/llm"
	"github.com/subham11/farmer-advisor-go/internal/retrieval"
)

// Query is the transport-agnostic request accepted by Run. Query is the only required field; everything else
// narrows location resolution or personalizes the crop plan.
type Query struct {
	Query           string
	Pincode         string
	District        string
	State            string
	Language         string
	UserProfile      *domain.UserProfile
	PreviousQueries  []string
}

// Orchestrator holds the wired agents and optional adapters. All fields
// except the three agents are nil-safe: a nil retriever or generator
// simply contributes nothing to the result.
type Orchestrator struct {
	soilAgent    *soil.Agent
	weatherAgent *weather.Agent
	cropAgent    *cropplanning.Agent
	retriever    retrieval.Retriever
	generator    llm.Generator
	logger       core.Logger
}

// New wires an Orchestrator from its component agents and optional
// retrieval/generation adapters.
func New(soilAgent *soil.Agent, weatherAgent *weather.Agent, cropAgent *cropplanning.Agent, retriever retrieval.Retriever, generator llm.Generator, logger core.Logger) *Orchestrator {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	if retriever == nil {
		retriever = retrieval.NoOpRetriever{}
	}
	if generator == nil {
		generator = llm.NoOpGenerator{}
	}
	return &Orchestrator{
		soilAgent:    soilAgent,
		weatherAgent: weatherAgent,
		cropAgent:    cropAgent,
		retriever:    retriever,
		generator:    generator,
		logger:       logger,
	}
}

// orchestratorFailureResult is the never-raises fallback shape for an
// orchestrator_failure: empty agents_invoked, a single orchestrator
// error, minimal confidence and prompt.
func orchestratorFailureResult(query string, reason string) *domain.OrchestratorResult {
	return &domain.OrchestratorResult{
		Query:             query,
		AgentsInvoked:     []string{},
		AgentErrors:       map[string]string{"orchestrator": reason},
		OverallConfidence: 0.0,
		DataSources:       []string{},
		DataFreshnessSummary: domain.DataFreshnessSummary{
			Overall: "mixed_sources",
		},
		LLMPromptInput: "Unable to complete analysis for this query. Please try again with soil type, pincode or state, and the season you are asking about.",
	}
}

// Run executes the full orchestration sequence. It never returns an
// error: any unhandled panic degrades to orchestratorFailureResult.
func (o *Orchestrator) Run(ctx context.Context, q Query) (result *domain.OrchestratorResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("orchestrator panic recovered", map[string]interface{}{"panic": r})
			result = orchestratorFailureResult(q.Query, "internal error")
		}
	}()
	return o.run(ctx, q)
}

func (o *Orchestrator) run(ctx context.Context, q Query) *domain.OrchestratorResult {
	intentResult := intent.Analyze(q.Query, q.PreviousQueries)
	agentSet := make(map[string]bool, len(intentResult.Agents))
	for _, a := range intentResult.Agents {
		agentSet[a] = true
	}

	profile := q.UserProfile
	if profile == nil {
		profile = &domain.UserProfile{IrrigationAvailable: true}
	}

	var soilResult *domain.SoilResult
	var weatherResult *domain.WeatherResult
	agentErrors := make(map[string]string)
	var errMu sync.Mutex

	var wg sync.WaitGroup
	if agentSet["soil"] && o.soilAgent != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errMu.Lock()
					agentErrors["soil"] = "internal error"
					errMu.Unlock()
				}
			}()
			soilResult = o.soilAgent.Analyze(ctx, soil.Input{
				Query:    q.Query,
				District: q.District,
				State:    q.State,
			})
		}()
	}
	if agentSet["weather"] && o.weatherAgent != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errMu.Lock()
					agentErrors["weather"] = "internal error"
					errMu.Unlock()
				}
			}()
			weatherResult = o.weatherAgent.Analyze(ctx, weather.Input{
				Query:    q.Query,
				Pincode:  q.Pincode,
				District: q.District,
				State:    q.State,
			})
		}()
	}
	wg.Wait()

	soilInvoked := soilResult != nil
	weatherInvoked := weatherResult != nil
	if soilResult == nil {
		soilResult = soil.DefaultResult()
	}
	if weatherResult == nil {
		weatherResult = weather.DefaultResult()
	}

	var cropPlan *domain.CropPlanResult
	cropInvoked := false
	if agentSet["crop_planning"] && o.cropAgent != nil {
		cropInvoked = true
		func() {
			defer func() {
				if r := recover(); r != nil {
					agentErrors["crop_planning"] = "internal error"
					cropPlan = cropplanning.DefaultResult()
				}
			}()
			cropPlan = o.cropAgent.Plan(ctx, cropplanning.Input{
				Query:               q.Query,
				SoilType:            soilResult.SoilType,
				SoilHealth:          soilResult.HealthScore,
				SoilConfidence:      soilResult.HealthConfidence,
				SoilConstraints:     soilResult.Constraints,
				WeatherScore:        weatherResult.SuitabilityScore,
				WeatherConfidence:   weatherResult.SuitabilityConfidence,
				Season:              weatherResult.Season,
				RainfallMM:          weatherResult.RainfallMM,
				RiskAssessment:      weatherResult.RiskAssessment,
				OptimalCrops:        weatherResult.OptimalCrops,
				FarmSizeHa:          profile.FarmSizeHa,
				IrrigationAvailable: profile.IrrigationAvailable,
			})
		}()
	}

	docs, _ := o.retriever.Retrieve(ctx, q.Query, 3)
	_ = docs // best-effort, not systematically incorporated into scoring

	agentsInvoked := []string{}
	if soilInvoked {
		agentsInvoked = append(agentsInvoked, "soil")
	}
	if weatherInvoked {
		agentsInvoked = append(agentsInvoked, "weather")
	}
	if cropInvoked {
		agentsInvoked = append(agentsInvoked, "crop_planning")
	}

	overall := overallConfidence(soilInvoked, weatherInvoked, cropInvoked, soilResult.HealthConfidence, weatherResult.SuitabilityConfidence, cropPlanConfidence(cropPlan), intentResult.Confidence, len(agentErrors))
	freshness := freshnessSummary(soilInvoked, weatherInvoked, cropInvoked, soilResult, weatherResult)
	dataSources := dedupSources(soilResult.DataSources, weatherResult.DataSources)

	result := &domain.OrchestratorResult{
		Query:                q.Query,
		IntentAnalysis:       intentResult,
		AgentsInvoked:        agentsInvoked,
		AgentErrors:          agentErrors,
		OverallConfidence:    overall,
		DataSources:          dataSources,
		DataFreshnessSummary: freshness,
	}
	if soilInvoked {
		result.SoilResult = soilResult
	}
	if weatherInvoked {
		result.WeatherResult = weatherResult
	}
	if cropInvoked {
		result.CropPlan = cropPlan
	}

	result.LLMPromptInput = assemblePrompt(result)
	return result
}

func cropPlanConfidence(plan *domain.CropPlanResult) float64 {
	if plan == nil {
		return 0.0
	}
	return plan.OverallConfidence
}

// overallConfidence builds the weighted sum and weight total only from
// agents actually invoked, then renormalizes weighted_sum/total_weight
// before applying the error penalty and clamping to [0.1, 1.0]. Intent
// analysis always runs, so its term is always included.
func overallConfidence(soilInvoked, weatherInvoked, cropInvoked bool, soilConfidence, weatherConfidence, cropConfidence, intentConfidence float64, errCount int) float64 {
	var weightedSum, totalWeight float64
	if soilInvoked {
		weightedSum += soilConfidence * 0.25
		totalWeight += 0.25
	}
	if weatherInvoked {
		weightedSum += weatherConfidence * 0.25
		totalWeight += 0.25
	}
	if cropInvoked {
		weightedSum += cropConfidence * 0.35
		totalWeight += 0.35
	}
	weightedSum += intentConfidence * 0.15
	totalWeight += 0.15

	var weighted float64
	if totalWeight > 0 {
		weighted = weightedSum / totalWeight
	}
	weighted -= 0.1 * float64(errCount)
	if weighted < 0.1 {
		weighted = 0.1
	}
	if weighted > 1.0 {
		weighted = 1.0
	}
	return round2(weighted)
}

// freshnessSummary implements the tolerant rollup rule: only agents
// actually invoked contribute to the overall rollup.
func freshnessSummary(soilInvoked, weatherInvoked, cropInvoked bool, soilResult *domain.SoilResult, weatherResult *domain.WeatherResult) domain.DataFreshnessSummary {
	summary := domain.DataFreshnessSummary{}
	var freshnesses []string

	if soilInvoked {
		summary.Soil = soilResult.DataFreshness
		freshnesses = append(freshnesses, soilResult.DataFreshness)
	}
	if weatherInvoked {
		summary.Weather = weatherResult.DataFreshness
		freshnesses = append(freshnesses, weatherResult.DataFreshness)
	}
	if cropInvoked {
		cropFreshness := "derived"
		summary.Crop = cropFreshness
	}

	if len(freshnesses) == 0 {
		summary.Overall = "mixed_sources"
		return summary
	}

	allHighAccuracy := true
	anyHistorical := false
	for _, f := range freshnesses {
		if f != "user_provided" && f != "live" {
			allHighAccuracy = false
		}
		if f == "historical" {
			anyHistorical = true
		}
	}

	switch {
	case allHighAccuracy:
		summary.Overall = "high_accuracy"
	case anyHistorical:
		summary.Overall = "estimated_from_historical"
	default:
		summary.Overall = "mixed_sources"
	}
	return summary
}

// dedupSources merges per-agent source lists into one deduplicated,
// deterministically ordered union.
func dedupSources(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
