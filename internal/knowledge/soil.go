package knowledge

// SoilCharacteristics describes the qualitative drainage/retention profile
// of a soil type.
type SoilCharacteristics struct {
	Drainage         string
	WaterRetention   string
	Workability      string
	NutrientRetention string
}

var SoilCharacteristicsTable = map[string]SoilCharacteristics{
	"clay":         {Drainage: "poor", WaterRetention: "high", Workability: "difficult", NutrientRetention: "high"},
	"sandy":        {Drainage: "excellent", WaterRetention: "low", Workability: "easy", NutrientRetention: "low"},
	"loam":         {Drainage: "good", WaterRetention: "moderate", Workability: "easy", NutrientRetention: "good"},
	"silt":         {Drainage: "moderate", WaterRetention: "high", Workability: "moderate", NutrientRetention: "good"},
	"peat":         {Drainage: "poor", WaterRetention: "very_high", Workability: "moderate", NutrientRetention: "high"},
	"chalk":        {Drainage: "excellent", WaterRetention: "low", Workability: "moderate", NutrientRetention: "low"},
	"black_cotton": {Drainage: "poor", WaterRetention: "high", Workability: "difficult", NutrientRetention: "high"},
	"red":          {Drainage: "good", WaterRetention: "moderate", Workability: "moderate", NutrientRetention: "moderate"},
	"laterite":     {Drainage: "excellent", WaterRetention: "low", Workability: "easy", NutrientRetention: "low"},
	"alluvial":     {Drainage: "good", WaterRetention: "moderate", Workability: "easy", NutrientRetention: "high"},
}

// RegionalSoilProfile is the default soil baseline for a region, used as the
// lowest-specificity fallback before the hardcoded "loam, pH 7.0" default.
type RegionalSoilProfile struct {
	SoilType          string
	PH                float64
	Fertility         string
	OrganicMatterFraction float64
}

var RegionalSoilProfiles = map[string]RegionalSoilProfile{
	"punjab":         {SoilType: "loam", PH: 7.8, Fertility: "high", OrganicMatterFraction: 0.6},
	"maharashtra":    {SoilType: "black_cotton", PH: 7.5, Fertility: "medium", OrganicMatterFraction: 0.5},
	"rajasthan":      {SoilType: "sandy", PH: 8.2, Fertility: "low", OrganicMatterFraction: 0.3},
	"kerala":         {SoilType: "laterite", PH: 5.5, Fertility: "medium", OrganicMatterFraction: 0.7},
	"west_bengal":    {SoilType: "alluvial", PH: 6.8, Fertility: "high", OrganicMatterFraction: 0.8},
	"tamil_nadu":     {SoilType: "red", PH: 6.5, Fertility: "medium", OrganicMatterFraction: 0.5},
	"karnataka":      {SoilType: "red", PH: 6.8, Fertility: "medium", OrganicMatterFraction: 0.5},
	"uttar_pradesh":  {SoilType: "alluvial", PH: 7.2, Fertility: "high", OrganicMatterFraction: 0.6},
	"madhya_pradesh": {SoilType: "black_cotton", PH: 7.6, Fertility: "medium", OrganicMatterFraction: 0.5},
	"gujarat":        {SoilType: "black_cotton", PH: 7.8, Fertility: "medium", OrganicMatterFraction: 0.4},
	"default":        {SoilType: "loam", PH: 7.0, Fertility: "medium", OrganicMatterFraction: 0.5},
}

// SoilTypeSynonyms maps each canonical soil type to the phrases a farmer
// might use for it in free text. First match in table order wins: the
// first entry with any keyword present in the query.
var SoilTypeSynonyms = []struct {
	Type     string
	Keywords []string
}{
	{"clay", []string{"clay", "clayey", "heavy soil"}},
	{"sandy", []string{"sandy", "sand", "light soil"}},
	{"loam", []string{"loam", "loamy"}},
	{"silt", []string{"silt", "silty"}},
	{"peat", []string{"peat", "peaty", "organic soil"}},
	{"chalk", []string{"chalk", "chalky", "calcareous"}},
	{"black_cotton", []string{"black cotton", "black soil", "regur", "vertisol"}},
	{"red", []string{"red soil", "red earth", "alfisol"}},
	{"laterite", []string{"laterite", "lateritic"}},
	{"alluvial", []string{"alluvial", "river soil", "doab"}},
}
