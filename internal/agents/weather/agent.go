package weather

import (
	"context"
	"strings"
	"time"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
	"github.com/subham11/farmer-advisor-go/internal/location"
	"github.com/subham11/farmer-advisor-go/internal/weatherfetch"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

// Input is what the Orchestrator passes to the Weather Agent.
type Input struct {
	Query    string
	Pincode  string
	District string
	State    string
}

// Agent is the Weather Agent: season determination, live/historical
// assembly, scoring, risks, irrigation, and weather-suitable crop ranking.
type Agent struct {
	resolver *location.Resolver
	fetcher  *weatherfetch.Fetcher
	store    memory.Store
	logger   core.Logger
}

// New builds a Weather Agent wired to the Location Resolver, Weather
// Fetcher, and Learning Store.
func New(resolver *location.Resolver, fetcher *weatherfetch.Fetcher, store memory.Store, logger core.Logger) *Agent {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Agent{resolver: resolver, fetcher: fetcher, store: store, logger: logger}
}

// DefaultResult is the surrogate Weather Result used both when the Weather
// Agent panics and when the Orchestrator needs a stand-in because the
// agent was never invoked or failed outright.
func DefaultResult() *domain.WeatherResult {
	return &domain.WeatherResult{
		Season:                "kharif",
		TemperatureRange:      domain.TemperatureRange{Min: 22, Max: 35, OptimalRange: "24-33°C"},
		RainfallMM:            800,
		RainfallPattern:       "moderate",
		HumidityPercent:       70,
		SuitabilityScore:      5.0,
		SuitabilityConfidence: 0.2,
		OptimalCrops:          []domain.WeatherSuitableCrop{},
		DataSources:           []string{"default_fallback"},
		DataFreshness:         "default",
	}
}

// Analyze never returns an error: unexpected internal failures still
// produce a default-filled Weather Result.
func (a *Agent) Analyze(ctx context.Context, in Input) (result *domain.WeatherResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("weather agent panic recovered", map[string]interface{}{"panic": r})
			result = DefaultResult()
		}
	}()
	return a.analyze(ctx, in)
}

func (a *Agent) analyze(ctx context.Context, in Input) *domain.WeatherResult {
	season := determineSeason(in.Query, time.Now())

	loc := a.resolver.Resolve(ctx, location.Hint{Pincode: in.Pincode, District: in.District, State: in.State})
	locCtx := domain.LocationContext{
		Pincode: loc.Pincode, District: loc.District, State: loc.State,
		Latitude: loc.Lat, Longitude: loc.Lon,
		FallbackLevel: string(loc.FallbackLevel), Confidence: loc.Confidence,
	}

	var dataSources []string
	var tempMin, tempMax, rainfall, humidity float64
	var frostRisk string
	freshness := "historical"
	liveObtained := false

	if a.fetcher != nil {
		if obs, ok := a.fetcher.Fetch(ctx, loc.Lat, loc.Lon); ok {
			tempMin, tempMax, rainfall, humidity = obs.TempMin, obs.TempMax, obs.Rainfall, float64(obs.Humidity)
			freshness = "live"
			liveObtained = true
			dataSources = append(dataSources, "live_weather", "coord_source_"+string(loc.FallbackLevel))
			frostRisk = regionalFrostRisk(loc.District, loc.State, season)
		}
	}

	if !liveObtained {
		region := loc.District
		profile, ok := knowledge.RegionalWeatherProfiles[normalizeKey(region)][season]
		if !ok {
			region = loc.State
			profile, ok = knowledge.RegionalWeatherProfiles[normalizeKey(region)][season]
		}
		if !ok {
			profile = knowledge.RegionalWeatherProfiles["default"][season]
			dataSources = append(dataSources, "default_fallback")
		} else {
			dataSources = append(dataSources, "regional_profile_"+normalizeKey(region))
		}
		tempMin, tempMax, rainfall, humidity = profile.TempMin, profile.TempMax, profile.Rainfall, profile.Humidity
		frostRisk = profile.FrostRisk
	}

	score, confidence := suitability(season, tempMin, tempMax, rainfall, humidity, frostRisk)
	risks := assessRisks(season, tempMin, tempMax, rainfall, humidity, frostRisk)
	irrigation := irrigationNeeds(season, tempMax, humidity, rainfall)
	optimalCrops := weatherSuitableCrops(tempMin, tempMax, rainfall, humidity, frostRisk)

	seasonWindow := knowledge.SeasonDates[season]

	if liveObtained && loc.State != "" {
		a.store.SaveWeatherObservation(loc.State, season, memory.WeatherObservation{
			TempMin: tempMin, TempMax: tempMax, Rainfall: rainfall, Humidity: humidity, Source: "open_meteo_live",
		})
	}

	return &domain.WeatherResult{
		Season:      season,
		SeasonDates: seasonWindow.Start + " - " + seasonWindow.End + " (sow " + seasonWindow.SowingWindow + ")",
		TemperatureRange: domain.TemperatureRange{
			Min: tempMin, Max: tempMax, OptimalRange: optimalTempRange(tempMin, tempMax),
		},
		RainfallMM:            rainfall,
		RainfallPattern:       rainfallPattern(rainfall),
		HumidityPercent:       humidity,
		SuitabilityScore:      score,
		SuitabilityConfidence: confidence,
		RiskAssessment:        risks,
		IrrigationNeeds:       irrigation,
		OptimalCrops:          optimalCrops,
		DataSources:           dedup(dataSources),
		DataFreshness:         freshness,
		LocationContext:       locCtx,
	}
}

// regionalFrostRisk supplies a frost-risk qualifier for a live-observed
// reading, since the live API carries no frost field of its own.
func regionalFrostRisk(district, state, season string) string {
	if p, ok := knowledge.RegionalWeatherProfiles[normalizeKey(district)][season]; ok {
		return p.FrostRisk
	}
	if p, ok := knowledge.RegionalWeatherProfiles[normalizeKey(state)][season]; ok {
		return p.FrostRisk
	}
	return knowledge.RegionalWeatherProfiles["default"][season].FrostRisk
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
