package cropplanning

import (
	"fmt"
	"strings"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

// varietyRecommendations chooses up to 4 varieties driven by risk
// conditions, always ensuring at least one high_yield entry.
func varietyRecommendations(crop knowledge.Crop, droughtLevel, frostLevel string, soilHealth float64) []string {
	var out []string
	add := func(names []string, n int) {
		for _, name := range names {
			if len(out) >= n {
				return
			}
			out = append(out, name)
		}
	}

	if droughtLevel == "moderate" || droughtLevel == "high" {
		add(crop.Varieties["drought_resistant"], len(out)+2)
	}
	if frostLevel == "moderate" || frostLevel == "high" {
		short := crop.Varieties["short_duration"]
		if len(short) == 0 {
			short = crop.Varieties["early_maturing"]
		}
		add(short, len(out)+2)
	}

	if soilHealth >= 7 {
		add(crop.Varieties["high_yield"], len(out)+2)
	} else {
		fallback := crop.Varieties["disease_resistant"]
		if len(fallback) == 0 {
			fallback = crop.Varieties["drought_resistant"]
		}
		add(fallback, len(out)+2)
	}

	out = dedupStrings(out)
	hasHighYield := false
	for _, v := range out {
		for _, hy := range crop.Varieties["high_yield"] {
			if v == hy {
				hasHighYield = true
			}
		}
	}
	if !hasHighYield && len(crop.Varieties["high_yield"]) > 0 {
		if len(out) >= 4 {
			out = out[:3]
		}
		out = append(out, crop.Varieties["high_yield"][0])
	}

	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

// schemesFor resolves each of a crop's scheme names to canonical detail.
func schemesFor(crop knowledge.Crop) []domain.SchemeDetail {
	out := make([]domain.SchemeDetail, 0, len(crop.GovernmentSchemes))
	for _, name := range crop.GovernmentSchemes {
		s := knowledge.ResolveScheme(name, crop.MSP2024)
		out = append(out, domain.SchemeDetail{Name: s.Name, Benefit: s.Benefit, Eligibility: s.Eligibility})
	}
	return out
}

// generateReasoning builds a comma-joined sentence from soil/water/MSP
// match clauses, with a generic fallback.
func generateReasoning(crop knowledge.Crop, soilType string, rainfall float64) string {
	var clauses []string

	if crop.SuitableSoils[soilType] {
		clauses = append(clauses, fmt.Sprintf("well suited to %s soil", soilType))
	}

	switch crop.WaterRequirement {
	case knowledge.WaterLow:
		if rainfall < 400 {
			clauses = append(clauses, "low water requirement matches limited rainfall")
		}
	case knowledge.WaterHigh, knowledge.WaterVeryHigh:
		if rainfall >= 800 {
			clauses = append(clauses, "high water requirement matches available rainfall")
		}
	}

	if crop.MSP2024 != nil {
		clauses = append(clauses, "guaranteed MSP provides price security")
	}

	if len(clauses) == 0 {
		return fmt.Sprintf("%s is a viable option based on current conditions", strings.Title(crop.Name))
	}
	return strings.Title(crop.Name) + ": " + strings.Join(clauses, ", ")
}

// seasonAlternatives are low-input crops suggested per season.
var seasonAlternatives = map[string][]struct {
	Crop   string
	Reason string
}{
	"kharif": {
		{"millet", "Low-input, drought-tolerant option for kharif"},
		{"sorghum", "Hardy rainfed crop for kharif"},
		{"pigeonpea", "Nitrogen-fixing legume suited to kharif"},
	},
	"rabi": {
		{"lentil", "Low-water pulse suited to rabi"},
		{"pea", "Short-duration rabi legume"},
		{"linseed", "Low-input oilseed for rabi"},
	},
	"zaid": {
		{"cucumber", "Quick-maturing zaid vegetable"},
		{"watermelon", "High-value zaid crop with low duration"},
		{"moong", "Short-duration zaid pulse"},
	},
}

// alternatives builds the season-keyed low-input list plus soil-specific
// hints, capped at 5.
func alternatives(season, soilType string, recommended map[string]bool) []domain.Alternative {
	var out []domain.Alternative
	for _, alt := range seasonAlternatives[season] {
		if recommended[alt.Crop] {
			continue
		}
		out = append(out, domain.Alternative{Crop: alt.Crop, Reason: alt.Reason})
	}

	if soilType == "sandy" && !recommended["groundnut"] {
		out = append(out, domain.Alternative{Crop: "groundnut", Reason: "Ideal for sandy soil drainage"})
	}
	if soilType == "clay" && !recommended["rice"] {
		out = append(out, domain.Alternative{Crop: "rice", Reason: "Clay soil water retention suits rice"})
	}

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func dedupStrings(items []string) []string {
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
