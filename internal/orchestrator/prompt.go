package orchestrator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/subham11/farmer-advisor-go/internal/domain"
)

// assemblePrompt builds the deterministic, bounded llm_prompt_input
// template here step 6. Every section is present only when its
// corresponding agent result is present (the "prompt completeness" law).
func assemblePrompt(result *domain.OrchestratorResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User Query: %s\n", result.Query)
	fmt.Fprintf(&b, "Response Confidence: %d%%\n", pct(result.OverallConfidence))

	if result.SoilResult != nil && result.SoilResult.LocationContext.State != "" {
		loc := result.SoilResult.LocationContext
		fmt.Fprintf(&b, "Location: %s", loc.State)
		if loc.District != "" {
			fmt.Fprintf(&b, ", %s", loc.District)
		}
		b.WriteString("\n")
	} else if result.WeatherResult != nil && result.WeatherResult.LocationContext.State != "" {
		loc := result.WeatherResult.LocationContext
		fmt.Fprintf(&b, "Location: %s", loc.State)
		if loc.District != "" {
			fmt.Fprintf(&b, ", %s", loc.District)
		}
		b.WriteString("\n")
	}

	if result.SoilResult != nil {
		writeSoilSection(&b, result.SoilResult)
	}
	if result.WeatherResult != nil {
		writeWeatherSection(&b, result.WeatherResult)
	}
	if result.CropPlan != nil {
		writeCropSection(&b, result.CropPlan)
	}

	fmt.Fprintf(&b, "\nOverall data confidence: %d%%\n", pct(result.OverallConfidence))
	if len(result.DataSources) > 0 {
		fmt.Fprintf(&b, "Data sources: %s\n", strings.Join(capList(result.DataSources, 5), ", "))
	}

	b.WriteString("\nPlease provide a concise 2-3 paragraph recommendation based on the above analysis.")
	if result.OverallConfidence < 0.5 {
		b.WriteString(" Clearly mention that these recommendations are estimates and encourage the farmer to consult a local agricultural extension office for confirmation.")
	}

	return b.String()
}

func writeSoilSection(b *strings.Builder, s *domain.SoilResult) {
	b.WriteString("\nSOIL ANALYSIS:\n")
	fmt.Fprintf(b, "- Type: %s, pH: %s\n", s.SoilType, trimFloat(s.PHLevel))
	fmt.Fprintf(b, "- Health Score: %s/10 (confidence %d%%)\n", trimFloat(s.HealthScore), pct(s.HealthConfidence))
	if s.NitrogenPPM > 0 || s.PhosphorusPPM > 0 || s.PotassiumPPM > 0 {
		fmt.Fprintf(b, "- NPK: N=%s, P=%s, K=%s ppm\n", trimFloat(s.NitrogenPPM), trimFloat(s.PhosphorusPPM), trimFloat(s.PotassiumPPM))
	}
	if s.OrganicMatterFraction > 0 {
		fmt.Fprintf(b, "- Organic Matter: %d%%\n", int(s.OrganicMatterFraction*100+0.5))
	}
	for _, c := range capList(s.Constraints, 3) {
		fmt.Fprintf(b, "- Constraint: %s\n", c)
	}
	for _, r := range capList(s.Recommendations, 3) {
		fmt.Fprintf(b, "- Recommendation: %s\n", r)
	}
}

func writeWeatherSection(b *strings.Builder, w *domain.WeatherResult) {
	b.WriteString("\nWEATHER ANALYSIS:\n")
	fmt.Fprintf(b, "- Season: %s, Temperature: %s-%s°C\n", w.Season, trimFloat(w.TemperatureRange.Min), trimFloat(w.TemperatureRange.Max))
	fmt.Fprintf(b, "- Rainfall: %s mm (%s), Humidity: %s%%\n", trimFloat(w.RainfallMM), w.RainfallPattern, trimFloat(w.HumidityPercent))
	fmt.Fprintf(b, "- Suitability Score: %s/10\n", trimFloat(w.SuitabilityScore))
	fmt.Fprintf(b, "- Irrigation: %s (%s)\n", w.IrrigationNeeds.Level, w.IrrigationNeeds.Notes)
	for _, risk := range capList(w.RiskAssessment.Summary, 3) {
		fmt.Fprintf(b, "- Risk: %s\n", risk)
	}
}

func writeCropSection(b *strings.Builder, c *domain.CropPlanResult) {
	b.WriteString("\nCROP RECOMMENDATIONS:\n")
	for i, crop := range c.RecommendedCrops {
		fmt.Fprintf(b, "%d. %s (confidence %d%%): %s\n", i+1, strings.Title(crop.Name), pct(crop.Confidence), crop.Reasoning)
		fmt.Fprintf(b, "   Expected yield: %s-%s kg/ha, Duration: %d months\n",
			trimFloat(crop.ExpectedYield.Range[0]), trimFloat(crop.ExpectedYield.Range[1]), crop.DurationMonths)
		if crop.Economics.InputCostTotal > 0 {
			fmt.Fprintf(b, "   Input cost: ₹%s\n", trimFloat(crop.Economics.InputCostTotal))
		}
		if crop.MSPAvailable && crop.Economics.RevenueMSP != nil {
			fmt.Fprintf(b, "   MSP revenue: ₹%s\n", trimFloat(*crop.Economics.RevenueMSP))
		}
		for _, v := range capList(crop.Varieties, 2) {
			fmt.Fprintf(b, "   Variety: %s\n", v)
		}
		for i, sch := range crop.GovernmentSchemes {
			if i >= 2 {
				break
			}
			fmt.Fprintf(b, "   Scheme: %s\n", sch.Name)
		}
	}

	if len(c.Alternatives) > 0 {
		b.WriteString("\nAlternatives: ")
		var names []string
		for _, alt := range capAlternatives(c.Alternatives, 5) {
			names = append(names, alt.Crop)
		}
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}
	if len(c.Risks) > 0 {
		b.WriteString("Risks: ")
		var descs []string
		for _, r := range c.Risks {
			descs = append(descs, r.Description)
		}
		b.WriteString(strings.Join(descs, "; "))
		b.WriteString("\n")
	}
	if len(c.Precautions) > 0 {
		b.WriteString("Precautions: ")
		var actions []string
		for _, p := range capList(precautionActions(c.Precautions), 10) {
			actions = append(actions, p)
		}
		b.WriteString(strings.Join(actions, "; "))
		b.WriteString("\n")
	}
}

func precautionActions(items []domain.Precaution) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Action
	}
	return out
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func capAlternatives(items []domain.Alternative, n int) []domain.Alternative {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func pct(v float64) int {
	return int(v*100 + 0.5)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}
