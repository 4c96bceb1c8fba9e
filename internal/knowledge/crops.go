// Package knowledge holds the static reference tables every agent consults:
// the crop database, soil and weather profiles, crop-weather requirements,
// well-known coordinates, scheme details, and intent keyword patterns. All
// tables are package-level maps built once at init and never mutated, so
// concurrent readers need no synchronization.
package knowledge

// WaterRequirement classifies how thirsty a crop is.
type WaterRequirement string

const (
	WaterLow      WaterRequirement = "low"
	WaterModerate WaterRequirement = "moderate"
	WaterHigh     WaterRequirement = "high"
	WaterVeryHigh WaterRequirement = "very_high"
)

// PriceRange is a market price band in rupees per quintal.
type PriceRange struct {
	Min float64
	Max float64
}

// Crop is one entry of the crop database.
type Crop struct {
	Name             string
	Varieties        map[string][]string // trait -> variety names
	InputCosts       InputCosts          // ₹/ha
	ExpectedYieldKgHa float64
	MarketPriceRange PriceRange
	MSP2024          *float64 // ₹/quintal, nil when no MSP exists
	SuitableSoils    map[string]bool
	WaterRequirement WaterRequirement
	GovernmentSchemes []string
	DurationMonths   int
}

// InputCosts is the per-hectare cost breakdown in rupees.
type InputCosts struct {
	Seeds       float64
	Fertilizers float64
	Irrigation  float64
	Pesticides  float64
}

func (c InputCosts) Total() float64 {
	return c.Seeds + c.Fertilizers + c.Irrigation + c.Pesticides
}

func msp(v float64) *float64 { return &v }

func soils(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// CropDB maps crop name to its full database entry, preserved verbatim from
// the source farmer-advisory system (varieties, input costs, MSP, suitable
// soils, duration).
var CropDB = map[string]Crop{
	"rice": {
		Name: "rice",
		Varieties: map[string][]string{
			"high_yield":       {"Pusa Basmati 1121", "IR-64", "Swarna"},
			"drought_resistant": {"Sahbhagi Dhan", "DRR 44"},
			"short_duration":   {"Pusa 44", "PR 126"},
		},
		InputCosts:        InputCosts{Seeds: 1500, Fertilizers: 8000, Irrigation: 15000, Pesticides: 3000},
		ExpectedYieldKgHa: 4500,
		MarketPriceRange:  PriceRange{Min: 2000, Max: 2200},
		MSP2024:           msp(2300),
		SuitableSoils:     soils("clay", "loam", "alluvial"),
		WaterRequirement:  WaterHigh,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "Paddy Procurement at MSP"},
		DurationMonths:    4,
	},
	"wheat": {
		Name: "wheat",
		Varieties: map[string][]string{
			"high_yield":        {"HD 3086", "PBW 725", "WH 1105"},
			"drought_resistant": {"HD 2987", "Raj 4120"},
			"disease_resistant": {"HD 3226", "DBW 187"},
		},
		InputCosts:        InputCosts{Seeds: 2000, Fertilizers: 6000, Irrigation: 8000, Pesticides: 2000},
		ExpectedYieldKgHa: 4000,
		MarketPriceRange:  PriceRange{Min: 2100, Max: 2400},
		MSP2024:           msp(2275),
		SuitableSoils:     soils("loam", "clay", "alluvial"),
		WaterRequirement:  WaterModerate,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "Wheat Procurement"},
		DurationMonths:    5,
	},
	"maize": {
		Name: "maize",
		Varieties: map[string][]string{
			"high_yield":        {"HQPM 1", "Vivek QPM 9", "DHM 117"},
			"drought_resistant": {"PEHM 5", "Vivek 27"},
			"short_duration":    {"HQPM 5", "Vivek 21"},
		},
		InputCosts:        InputCosts{Seeds: 2500, Fertilizers: 5000, Irrigation: 6000, Pesticides: 2500},
		ExpectedYieldKgHa: 5000,
		MarketPriceRange:  PriceRange{Min: 1800, Max: 2100},
		MSP2024:           msp(2090),
		SuitableSoils:     soils("loam", "sandy", "alluvial"),
		WaterRequirement:  WaterModerate,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "e-NAM"},
		DurationMonths:    4,
	},
	"cotton": {
		Name: "cotton",
		Varieties: map[string][]string{
			"high_yield":        {"RCH 2 BG II", "Bunny BG II", "Mallika BG II"},
			"drought_resistant": {"CICR 2", "Suraj"},
			"pest_resistant":    {"Bt Cotton varieties"},
		},
		InputCosts:        InputCosts{Seeds: 4000, Fertilizers: 8000, Irrigation: 10000, Pesticides: 6000},
		ExpectedYieldKgHa: 2000,
		MarketPriceRange:  PriceRange{Min: 6000, Max: 7000},
		MSP2024:           msp(7020),
		SuitableSoils:     soils("black_cotton", "loam"),
		WaterRequirement:  WaterModerate,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "Cotton Corporation of India Procurement"},
		DurationMonths:    6,
	},
	"soybean": {
		Name: "soybean",
		Varieties: map[string][]string{
			"high_yield":        {"JS 9560", "JS 20-34", "NRC 142"},
			"drought_resistant": {"NRC 86", "JS 335"},
			"disease_resistant": {"MACS 1407", "NRC 150"},
		},
		InputCosts:        InputCosts{Seeds: 3000, Fertilizers: 4000, Irrigation: 4000, Pesticides: 2000},
		ExpectedYieldKgHa: 2200,
		MarketPriceRange:  PriceRange{Min: 4000, Max: 4500},
		MSP2024:           msp(4600),
		SuitableSoils:     soils("loam", "black_cotton", "alluvial"),
		WaterRequirement:  WaterModerate,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "NAFED Procurement"},
		DurationMonths:    4,
	},
	"groundnut": {
		Name: "groundnut",
		Varieties: map[string][]string{
			"high_yield":        {"TG 37A", "TAG 24", "GPBD 4"},
			"drought_resistant": {"ICGV 91114", "TG 26"},
			"high_oil":          {"Girnar 3", "GJG 9"},
		},
		InputCosts:        InputCosts{Seeds: 4000, Fertilizers: 5000, Irrigation: 5000, Pesticides: 2000},
		ExpectedYieldKgHa: 2000,
		MarketPriceRange:  PriceRange{Min: 5000, Max: 5800},
		MSP2024:           msp(6377),
		SuitableSoils:     soils("sandy", "loam", "red"),
		WaterRequirement:  WaterLow,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "NAFED Procurement"},
		DurationMonths:    4,
	},
	"chickpea": {
		Name: "chickpea",
		Varieties: map[string][]string{
			"high_yield":        {"JG 14", "Vijay", "JAKI 9218"},
			"drought_resistant": {"JG 11", "Digvijay"},
			"disease_resistant": {"NBeG 47", "GNG 2144"},
		},
		InputCosts:        InputCosts{Seeds: 3000, Fertilizers: 3000, Irrigation: 2000, Pesticides: 1500},
		ExpectedYieldKgHa: 1800,
		MarketPriceRange:  PriceRange{Min: 4500, Max: 5500},
		MSP2024:           msp(5440),
		SuitableSoils:     soils("loam", "black_cotton", "clay"),
		WaterRequirement:  WaterLow,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "Pulses Procurement"},
		DurationMonths:    4,
	},
	"mustard": {
		Name: "mustard",
		Varieties: map[string][]string{
			"high_yield":        {"Pusa Bold", "RH 749", "NRCDR 601"},
			"drought_resistant": {"NRCHB 101", "Kranti"},
			"early_maturing":    {"Pusa Vijay", "RGN 229"},
		},
		InputCosts:        InputCosts{Seeds: 1000, Fertilizers: 4000, Irrigation: 3000, Pesticides: 1500},
		ExpectedYieldKgHa: 1500,
		MarketPriceRange:  PriceRange{Min: 5000, Max: 5800},
		MSP2024:           msp(5650),
		SuitableSoils:     soils("loam", "sandy", "alluvial"),
		WaterRequirement:  WaterLow,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "NAFED Procurement"},
		DurationMonths:    4,
	},
	"sugarcane": {
		Name: "sugarcane",
		Varieties: map[string][]string{
			"high_yield":        {"Co 0238", "CoJ 85", "CoLK 94184"},
			"drought_resistant": {"Co 94012", "CoS 97261"},
			"high_sugar":        {"Co 0118", "CoM 0265"},
		},
		InputCosts:        InputCosts{Seeds: 8000, Fertilizers: 12000, Irrigation: 20000, Pesticides: 4000},
		ExpectedYieldKgHa: 70000,
		MarketPriceRange:  PriceRange{Min: 300, Max: 400},
		MSP2024:           msp(315),
		SuitableSoils:     soils("loam", "clay", "alluvial", "black_cotton"),
		WaterRequirement:  WaterVeryHigh,
		GovernmentSchemes: []string{"PM-KISAN", "Sugar Development Fund"},
		DurationMonths:    12,
	},
	"potato": {
		Name: "potato",
		Varieties: map[string][]string{
			"high_yield":        {"Kufri Jyoti", "Kufri Pukhraj", "Kufri Badshah"},
			"processing":        {"Kufri Chipsona 1", "Kufri Frysona"},
			"disease_resistant": {"Kufri Khyati", "Kufri Himalini"},
		},
		InputCosts:        InputCosts{Seeds: 25000, Fertilizers: 8000, Irrigation: 6000, Pesticides: 4000},
		ExpectedYieldKgHa: 25000,
		MarketPriceRange:  PriceRange{Min: 800, Max: 1500},
		MSP2024:           nil,
		SuitableSoils:     soils("loam", "sandy", "alluvial"),
		WaterRequirement:  WaterModerate,
		GovernmentSchemes: []string{"PM-KISAN", "PMFBY", "Cold Storage Subsidy"},
		DurationMonths:    4,
	},
	"barley": {
		Name:              "barley",
		Varieties:         map[string][]string{},
		ExpectedYieldKgHa: 2500,
		SuitableSoils:     soils("loam"),
		WaterRequirement:  WaterLow,
		DurationMonths:    5,
	},
	"millet": {
		Name:              "millet",
		Varieties:         map[string][]string{},
		ExpectedYieldKgHa: 1200,
		SuitableSoils:     soils("sandy", "red"),
		WaterRequirement:  WaterLow,
		DurationMonths:    3,
	},
	"sorghum": {
		Name:              "sorghum",
		Varieties:         map[string][]string{},
		ExpectedYieldKgHa: 1500,
		SuitableSoils:     soils("black_cotton", "red"),
		WaterRequirement:  WaterLow,
		DurationMonths:    4,
	},
}

// BaseYieldKgHa falls back to a historical baseline for crops absent from
// CropDB, matching the source's hardcoded _estimate_yield fallback table.
var BaseYieldKgHa = map[string]float64{
	"rice": 4500, "wheat": 4000, "maize": 5000,
	"cotton": 2000, "soybean": 2200, "groundnut": 2000,
	"chickpea": 1800, "mustard": 1500, "sugarcane": 70000,
	"potato": 25000,
}

// DurationMonths maps crop to growing duration in months, consulted before
// falling back to CropDB's own DurationMonths or a 4-month default.
var DurationMonths = map[string]int{
	"rice": 4, "wheat": 5, "maize": 4, "cotton": 6,
	"soybean": 4, "groundnut": 4, "chickpea": 4, "mustard": 4,
	"sugarcane": 12, "potato": 4, "barley": 5, "millet": 3,
	"sorghum": 4,
}
