package knowledge

// IntentPattern is a scored keyword set for one intent.
type IntentPattern struct {
	Keywords []string
	Weight   float64
}

// IntentPatterns drives the Intent Router's keyword scoring.
// crop_planning carries a higher weight since it is the query's usual
// ultimate goal; market_info a lower one since it is often incidental.
var IntentPatterns = map[string]IntentPattern{
	"soil_analysis": {
		Keywords: []string{
			"soil", "ph", "clay", "sandy", "loam", "nitrogen", "phosphorus",
			"potassium", "npk", "fertile", "fertility", "land", "ground",
			"earth", "mitti", "organic matter", "micronutrient",
		},
		Weight: 1.0,
	},
	"weather_analysis": {
		Keywords: []string{
			"weather", "rain", "rainfall", "season", "kharif", "rabi", "zaid",
			"temperature", "humidity", "monsoon", "winter", "summer", "climate",
			"frost", "drought", "flood", "irrigation",
		},
		Weight: 1.0,
	},
	"crop_planning": {
		Keywords: []string{
			"crop", "plant", "grow", "cultivate", "farm", "recommend", "suggest",
			"what to plant", "which crop", "best crop", "sow", "harvest", "yield",
			"variety", "seed", "profit", "income", "msp", "price",
		},
		Weight: 1.2,
	},
	"market_info": {
		Keywords: []string{
			"price", "msp", "market", "sell", "income", "profit", "cost",
			"mandi", "procurement", "subsidy", "scheme", "loan",
		},
		Weight: 0.8,
	},
	"pest_disease": {
		Keywords: []string{
			"pest", "disease", "insect", "fungus", "virus", "blight", "rot",
			"spray", "pesticide", "medicine", "treatment",
		},
		Weight: 0.9,
	},
}
