// Package cropplanning implements the Crop-Planning Agent: candidate
// selection against soil and weather, per-crop confidence and economics,
// variety and scheme resolution, alternatives, and risk/precaution lists.
package cropplanning

import (
	"sort"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

type candidate struct {
	crop       knowledge.Crop
	confidence float64
}

// selectCandidates filters Crop DB by suitable soil and irrigation
// availability, cross-references the Weather Agent's optimal crops, caps
// to 5 candidates before scoring, computes confidence for each, then
// ranks desc and returns the top 4.
func selectCandidates(soilType string, irrigationAvailable bool, soilHealth, soilConfidence float64, weatherScore, weatherConfidence float64, optimalCrops []domain.WeatherSuitableCrop) []candidate {
	weatherCropSet := make(map[string]bool, len(optimalCrops))
	for _, oc := range optimalCrops {
		weatherCropSet[oc.Crop] = true
	}

	var eligible []string
	for name, crop := range knowledge.CropDB {
		if !cropMatchesSoil(crop, soilType) {
			continue
		}
		if !irrigationAvailable && (crop.WaterRequirement == knowledge.WaterHigh || crop.WaterRequirement == knowledge.WaterVeryHigh) {
			continue
		}
		eligible = append(eligible, name)
	}
	sort.Strings(eligible)

	var prioritized, remaining []string
	for _, name := range eligible {
		if weatherCropSet[name] {
			prioritized = append(prioritized, name)
		} else {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) > 3 {
		remaining = remaining[:3]
	}
	ordered := append(prioritized, remaining...)
	if len(ordered) > 5 {
		ordered = ordered[:5]
	}

	var candidates []candidate
	for _, name := range ordered {
		crop := knowledge.CropDB[name]
		conf := perCropConfidence(crop, soilType, soilHealth, soilConfidence, weatherScore, weatherConfidence)
		candidates = append(candidates, candidate{crop: crop, confidence: conf})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].confidence > candidates[j].confidence })
	if len(candidates) > 4 {
		candidates = candidates[:4]
	}
	return candidates
}

func cropMatchesSoil(crop knowledge.Crop, soilType string) bool {
	if soilType == "unknown" || soilType == "" {
		return true
	}
	return crop.SuitableSoils[soilType]
}

// perCropConfidence applies the multiplicative confidence formula.
func perCropConfidence(crop knowledge.Crop, soilType string, soilHealth, soilConfidence, weatherScore, weatherConfidence float64) float64 {
	conf := 0.7
	conf *= (0.4 + 0.6*soilHealth/10) * (0.5 + 0.5*soilConfidence)
	conf *= (0.4 + 0.6*weatherScore/10) * (0.5 + 0.5*weatherConfidence)

	if crop.SuitableSoils[soilType] {
		conf *= 1.15
	} else {
		conf *= 0.85
	}
	if crop.MSP2024 != nil {
		conf *= 1.05
	}

	return round2(clamp(conf, 0, 1.0))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
