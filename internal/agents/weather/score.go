package weather

import (
	"fmt"
	"sort"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rainfallPattern buckets mm into the qualitative pattern enum.
func rainfallPattern(rainfall float64) string {
	switch {
	case rainfall > 1500:
		return "very_heavy"
	case rainfall > 800:
		return "heavy"
	case rainfall > 400:
		return "moderate"
	case rainfall > 100:
		return "light"
	default:
		return "scanty"
	}
}

// suitability computes {score, confidence} from fixed scoring bands.
func suitability(season string, tempMin, tempMax, rainfall, humidity float64, frostRisk string) (float64, float64) {
	score := 7.0
	var confidences []float64

	switch {
	case tempMin >= 18 && tempMax <= 35:
		score += 2
		confidences = append(confidences, 0.85)
	case tempMin >= 15 && tempMax <= 38:
		score += 1
		confidences = append(confidences, 0.7)
	case tempMin < 10 || tempMax > 42:
		score -= 3
		confidences = append(confidences, 0.8)
	default:
		confidences = append(confidences, 0.6)
	}

	switch season {
	case "kharif":
		switch {
		case rainfall >= 600 && rainfall <= 1200:
			score += 1
			confidences = append(confidences, 0.8)
		case rainfall > 2000:
			score -= 2
			confidences = append(confidences, 0.75)
		case rainfall < 400:
			score -= 1
			confidences = append(confidences, 0.7)
		}
	case "rabi":
		switch {
		case rainfall >= 30 && rainfall <= 150:
			score += 1
			confidences = append(confidences, 0.8)
		case rainfall > 300:
			score -= 1
			confidences = append(confidences, 0.7)
		}
	}

	switch {
	case humidity >= 50 && humidity <= 75:
		score += 1
		confidences = append(confidences, 0.75)
	case humidity > 85:
		score -= 1
		confidences = append(confidences, 0.7)
	}

	switch frostRisk {
	case "high":
		score -= 2
		confidences = append(confidences, 0.8)
	case "moderate":
		score -= 1
		confidences = append(confidences, 0.75)
	}

	score = clamp(score, 1, 10)

	var sum float64
	for _, c := range confidences {
		sum += c
	}
	confidence := 0.5
	if len(confidences) > 0 {
		confidence = sum / float64(len(confidences))
	}
	return score, confidence
}

// assessRisks evaluates the five risk channels and builds the summary list
//.
func assessRisks(season string, tempMin, tempMax, rainfall, humidity float64, frostRisk string) domain.RiskAssessment {
	risks := domain.RiskAssessment{}
	var summary []string

	switch {
	case frostRisk == "high" || tempMin < 5:
		risks.Frost = domain.RiskLevel{Level: "high", Details: "Severe frost risk may damage sensitive crops"}
		summary = append(summary, "[HIGH] Frost risk may damage sensitive crops")
	case frostRisk == "moderate" || tempMin < 10:
		risks.Frost = domain.RiskLevel{Level: "moderate", Details: "Moderate frost risk in cold spells"}
		summary = append(summary, "[MODERATE] Frost risk in cold spells")
	default:
		risks.Frost = domain.RiskLevel{Level: "none", Details: "No significant frost risk"}
	}

	switch {
	case season == "kharif" && rainfall < 400:
		risks.Drought = domain.RiskLevel{Level: "high", Details: "Rainfall well below kharif requirement"}
		summary = append(summary, "[HIGH] Drought risk from insufficient monsoon rainfall")
	case rainfall < 200:
		risks.Drought = domain.RiskLevel{Level: "moderate", Details: "Rainfall below typical requirement"}
		summary = append(summary, "[MODERATE] Drought risk from low rainfall")
	default:
		risks.Drought = domain.RiskLevel{Level: "none", Details: "Adequate rainfall expected"}
	}

	switch {
	case rainfall > 2000:
		risks.Flood = domain.RiskLevel{Level: "high", Details: "Excessive rainfall may cause waterlogging or flooding"}
		summary = append(summary, "[HIGH] Flood risk from excessive rainfall")
	case rainfall > 1500:
		risks.Flood = domain.RiskLevel{Level: "moderate", Details: "Heavy rainfall may cause localized waterlogging"}
		summary = append(summary, "[MODERATE] Waterlogging risk from heavy rainfall")
	default:
		risks.Flood = domain.RiskLevel{Level: "none", Details: "Flood risk low"}
	}

	switch {
	case tempMax > 42:
		risks.HeatStress = domain.RiskLevel{Level: "high", Details: "Extreme heat may stress crops during flowering"}
		summary = append(summary, "[HIGH] Heat stress risk during flowering")
	case tempMax > 38:
		risks.HeatStress = domain.RiskLevel{Level: "moderate", Details: "Elevated temperatures may reduce yield"}
		summary = append(summary, "[MODERATE] Heat stress may reduce yield")
	default:
		risks.HeatStress = domain.RiskLevel{Level: "none", Details: "Temperature range favorable"}
	}

	switch {
	case humidity > 85:
		risks.DiseasePressure = domain.RiskLevel{Level: "high", Details: "High humidity favors fungal and bacterial disease"}
		summary = append(summary, "[HIGH] Disease pressure from high humidity")
	case humidity > 75:
		risks.DiseasePressure = domain.RiskLevel{Level: "moderate", Details: "Humidity favors some disease pressure"}
		summary = append(summary, "[MODERATE] Elevated disease pressure risk")
	default:
		risks.DiseasePressure = domain.RiskLevel{Level: "none", Details: "Disease pressure low"}
	}

	if len(summary) == 0 {
		summary = append(summary, "No major weather risks identified for this period")
	}
	risks.Summary = summary
	return risks
}

// irrigationNeeds computes the ET factor and buckets the result by
// rainfall and season.
func irrigationNeeds(season string, tempMax, humidity, rainfall float64) domain.IrrigationNeeds {
	etFactor := (tempMax-20)*0.15 + (100-humidity)*0.05

	switch {
	case season == "kharif" && rainfall > 800:
		return domain.IrrigationNeeds{Level: "minimal", Frequency: "only_if_dry_spell", MMPerWeek: 0, Notes: "Monsoon rainfall should meet most crop water needs"}
	case rainfall < 100:
		return domain.IrrigationNeeds{Level: "critical", Frequency: "every_2_3_days", MMPerWeek: 50 + int(etFactor*10), Notes: "Very low rainfall; irrigation is essential"}
	case rainfall < 400:
		return domain.IrrigationNeeds{Level: "high", Frequency: "twice_weekly", MMPerWeek: 35 + int(etFactor*5), Notes: "Supplemental irrigation required regularly"}
	case rainfall < 800:
		return domain.IrrigationNeeds{Level: "moderate", Frequency: "weekly", MMPerWeek: 20 + int(etFactor*3), Notes: "Periodic irrigation recommended"}
	default:
		return domain.IrrigationNeeds{Level: "low", Frequency: "as_needed", MMPerWeek: 10, Notes: "Rainfall largely sufficient; irrigate only during dry spells"}
	}
}

// weatherSuitableCrops scores every crop in the Crop-Weather Requirements
// table and returns up to 8 ranked entries.
func weatherSuitableCrops(tempMin, tempMax, rainfall, humidity float64, frostRisk string) []domain.WeatherSuitableCrop {
	type scored struct {
		crop    string
		score   float64
		factors []string
	}
	var all []scored

	for crop, req := range knowledge.CropWeatherRequirements {
		score := 1.0
		var factors []string

		switch {
		case tempMin >= req.TempMin && tempMax <= req.TempMax:
			factors = append(factors, "temperature ideal")
		case tempMin >= req.TempMin-5 && tempMax <= req.TempMax+5:
			score *= 0.7
			factors = append(factors, "temperature marginal")
		default:
			score *= 0.3
			factors = append(factors, "temperature unsuitable")
		}

		switch {
		case rainfall >= req.RainfallMin:
			factors = append(factors, "rainfall sufficient")
		case rainfall >= req.RainfallMin*0.6:
			score *= 0.7
			factors = append(factors, "rainfall marginal")
		default:
			score *= 0.4
			factors = append(factors, "rainfall insufficient")
		}

		if humidity < req.HumidityMin {
			score *= 0.8
		}

		if !req.FrostTolerant && (frostRisk == "high" || frostRisk == "moderate") {
			score *= 0.3
			factors = append(factors, "frost risk")
		}

		if score >= 0.5 {
			if len(factors) > 3 {
				factors = factors[:3]
			}
			all = append(all, scored{crop: crop, score: score, factors: factors})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].crop < all[j].crop
	})
	if len(all) > 8 {
		all = all[:8]
	}

	out := make([]domain.WeatherSuitableCrop, 0, len(all))
	for _, s := range all {
		out = append(out, domain.WeatherSuitableCrop{Crop: s.crop, WeatherSuitability: round2(s.score), Factors: s.factors})
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func optimalTempRange(tempMin, tempMax float64) string {
	return fmt.Sprintf("%.0f-%.0f°C", tempMin+2, tempMax-5)
}
