// Package domain holds the result shapes shared between the agents and the
// orchestrator that composes them, kept in one package to avoid import
// cycles between internal/agents/* and internal/orchestrator.
package domain

// LocationContext is the Location Resolver's output, embedded in every
// downstream agent result so a caller can see what resolution level backed
// the analysis.
type LocationContext struct {
	Pincode       string  `json:"pincode,omitempty"`
	District      string  `json:"district,omitempty"`
	State         string  `json:"state,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	FallbackLevel string  `json:"fallback_level"`
	Confidence    float64 `json:"confidence"`
}

// Micronutrient is one entry of a Soil Result's micronutrient map: either a
// measured value with a unit, or a bare qualitative status.
type Micronutrient struct {
	Value  *float64 `json:"value,omitempty"`
	Unit   string   `json:"unit,omitempty"`
	Status string   `json:"status,omitempty"`
	Source string   `json:"source"`
}

// SoilCharacteristics is the qualitative drainage/retention/workability
// profile looked up from the soil-type table.
type SoilCharacteristics struct {
	Drainage         string `json:"drainage"`
	WaterRetention   string `json:"water_retention"`
	Workability      string `json:"workability"`
	NutrientRetention string `json:"nutrient_retention"`
}

// SoilResult is the Soil Agent's output.
type SoilResult struct {
	SoilType             string              `json:"soil_type"`
	PHLevel              float64             `json:"ph_level"`
	NitrogenPPM          float64             `json:"nitrogen_ppm"`
	PhosphorusPPM        float64             `json:"phosphorus_ppm"`
	PotassiumPPM         float64             `json:"potassium_ppm"`
	OrganicMatterFraction float64            `json:"organic_matter_fraction"`
	Micronutrients       map[string]Micronutrient `json:"micronutrients,omitempty"`
	Characteristics      SoilCharacteristics `json:"characteristics"`
	HealthScore          float64             `json:"health_score"`
	HealthConfidence     float64             `json:"health_confidence"`
	Constraints          []string            `json:"constraints"`
	Recommendations      []string            `json:"recommendations"`
	DataSources          []string            `json:"data_sources"`
	DataFreshness        string              `json:"data_freshness"`
	LocationContext      LocationContext     `json:"location_context"`
}

// RiskLevel is one channel's {level, details} entry in Weather Result's
// risk assessment.
type RiskLevel struct {
	Level   string `json:"level"`
	Details string `json:"details"`
}

// RiskAssessment groups the five weather risk channels.
type RiskAssessment struct {
	Frost          RiskLevel `json:"frost"`
	Drought        RiskLevel `json:"drought"`
	Flood          RiskLevel `json:"flood"`
	HeatStress     RiskLevel `json:"heat_stress"`
	DiseasePressure RiskLevel `json:"disease_pressure"`
	Summary        []string  `json:"summary"`
}

// IrrigationNeeds is the Weather Agent's irrigation guidance.
type IrrigationNeeds struct {
	Level     string `json:"level"`
	Frequency string `json:"frequency"`
	MMPerWeek int    `json:"mm_per_week"`
	Notes     string `json:"notes"`
}

// WeatherSuitableCrop is one entry of the Weather Agent's ranked optimal
// crop list.
type WeatherSuitableCrop struct {
	Crop               string   `json:"crop"`
	WeatherSuitability float64  `json:"weather_suitability"`
	Factors            []string `json:"factors"`
}

// TemperatureRange is the Weather Result's temperature summary.
type TemperatureRange struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	OptimalRange string  `json:"optimal_range"`
}

// WeatherResult is the Weather Agent's output.
type WeatherResult struct {
	Season             string                `json:"season"`
	SeasonDates        string                `json:"season_dates"`
	TemperatureRange   TemperatureRange      `json:"temperature_range"`
	RainfallMM         float64               `json:"rainfall_mm"`
	RainfallPattern    string                `json:"rainfall_pattern"`
	HumidityPercent    float64               `json:"humidity_percent"`
	SuitabilityScore   float64               `json:"suitability_score"`
	SuitabilityConfidence float64            `json:"suitability_confidence"`
	RiskAssessment     RiskAssessment        `json:"risk_assessment"`
	IrrigationNeeds    IrrigationNeeds       `json:"irrigation_needs"`
	OptimalCrops       []WeatherSuitableCrop `json:"optimal_crops"`
	DataSources        []string              `json:"data_sources"`
	DataFreshness      string                `json:"data_freshness"`
	LocationContext    LocationContext       `json:"location_context"`
}

// ExpectedYield is one recommended crop's yield projection.
type ExpectedYield struct {
	KgPerHa          float64    `json:"kg_per_ha"`
	Range            [2]float64 `json:"range"`
	QualityFactor    string     `json:"quality_factor"`
	SoilHealthImpact string     `json:"soil_health_impact"`
}

// Economics is one recommended crop's cost/revenue projection.
type Economics struct {
	InputCostTotal  float64 `json:"input_cost_total"`
	RevenueMin      float64 `json:"revenue_min"`
	RevenueMax      float64 `json:"revenue_max"`
	RevenueMSP      *float64 `json:"revenue_msp,omitempty"`
	ProfitMin       float64 `json:"profit_min"`
	ProfitMax       float64 `json:"profit_max"`
	ProfitMSP       *float64 `json:"profit_msp,omitempty"`
	ROIPercent      float64 `json:"roi_percent"`
}

// RecommendedCrop is one ranked crop recommendation.
type RecommendedCrop struct {
	Name              string            `json:"name"`
	Confidence        float64           `json:"confidence"`
	Reasoning         string            `json:"reasoning"`
	ExpectedYield     ExpectedYield     `json:"expected_yield"`
	DurationMonths    int               `json:"duration_months"`
	WaterRequirement  string            `json:"water_requirement"`
	MSPAvailable      bool              `json:"msp_available"`
	Economics         Economics         `json:"economics"`
	Varieties         []string          `json:"varieties"`
	GovernmentSchemes []SchemeDetail    `json:"government_schemes"`
}

// SchemeDetail is a resolved government scheme entry attached to a crop
// recommendation.
type SchemeDetail struct {
	Name        string `json:"name"`
	Benefit     string `json:"benefit"`
	Eligibility string `json:"eligibility"`
}

// Alternative is a low-input fallback crop suggestion.
type Alternative struct {
	Crop   string `json:"crop"`
	Reason string `json:"reason"`
}

// Risk is a typed risk entry in the Crop-Plan Result.
type Risk struct {
	Type          string   `json:"type"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description"`
	AffectedCrops []string `json:"affected_crops,omitempty"`
	Mitigation    string   `json:"mitigation,omitempty"`
}

// Precaution is a typed, prioritized action in the Crop-Plan Result.
type Precaution struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Timing   string `json:"timing"`
}

// CropPlanResult is the Crop-Planning Agent's output.
type CropPlanResult struct {
	RecommendedCrops []RecommendedCrop `json:"recommended_crops"`
	Alternatives     []Alternative     `json:"alternatives"`
	Risks            []Risk            `json:"risks"`
	Precautions      []Precaution      `json:"precautions"`
	OverallConfidence float64          `json:"overall_confidence"`
	PlanningFactors  []string          `json:"planning_factors"`
}

// IntentAnalysis is the Intent Router's output.
type IntentAnalysis struct {
	Agents            []string `json:"agents"`
	Confidence        float64  `json:"confidence"`
	DetectedIntents   []string `json:"detected_intents"`
	IsDefaultSelection bool    `json:"is_default_selection"`
}

// DataFreshnessSummary is the Orchestrator's cross-agent freshness rollup.
type DataFreshnessSummary struct {
	Soil    string `json:"soil,omitempty"`
	Weather string `json:"weather,omitempty"`
	Crop    string `json:"crop,omitempty"`
	Overall string `json:"overall"`
}

// OrchestratorResult is the top-level response.
type OrchestratorResult struct {
	Query                string               `json:"query"`
	IntentAnalysis       IntentAnalysis       `json:"intent_analysis"`
	AgentsInvoked        []string             `json:"agents_invoked"`
	SoilResult           *SoilResult          `json:"soil_result,omitempty"`
	WeatherResult        *WeatherResult       `json:"weather_result,omitempty"`
	CropPlan             *CropPlanResult      `json:"crop_plan,omitempty"`
	AgentErrors          map[string]string    `json:"agent_errors"`
	OverallConfidence    float64              `json:"overall_confidence"`
	DataSources          []string             `json:"data_sources"`
	DataFreshnessSummary DataFreshnessSummary `json:"data_freshness_summary"`
	LLMPromptInput       string               `json:"llm_prompt_input"`
}

// UserProfile is the query entry-point's optional farmer context.
type UserProfile struct {
	FarmSizeHa          float64
	IrrigationAvailable bool
	PreviousCrop        string
	Budget              float64
}

// AgentContext is the shared context built once per request and passed to
// every agent.
type AgentContext struct {
	Pincode             string
	District             string
	State                string
	Language             string
	FarmSizeHa           float64
	IrrigationAvailable  bool
	PreviousCrop         string
	Budget               float64
}
