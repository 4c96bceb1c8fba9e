package cropplanning

import (
	"strings"

	"github.com/subham11/farmer-advisor-go/internal/domain"
)

// assessRisks scans soil constraint keywords and weather risk levels to
// build typed risk entries, always appending a baseline market risk
//.
func assessRisks(soilConstraints []string, weatherRisks domain.RiskAssessment) []domain.Risk {
	var risks []domain.Risk

	joined := strings.ToLower(strings.Join(soilConstraints, " "))
	if strings.Contains(joined, "waterlogging") {
		risks = append(risks, domain.Risk{
			Type: "soil", Severity: "moderate", Description: "Waterlogging may affect crops sensitive to excess moisture",
			AffectedCrops: []string{"groundnut", "chickpea", "mustard"},
		})
	}
	if strings.Contains(joined, "low water retention") {
		risks = append(risks, domain.Risk{
			Type: "soil", Severity: "moderate", Description: "Low water retention increases irrigation dependency",
			AffectedCrops: []string{"rice", "sugarcane"},
		})
	}

	if lvl := weatherRisks.Drought.Level; lvl == "moderate" || lvl == "high" {
		risks = append(risks, domain.Risk{
			Type: "weather", Severity: lvl, Description: weatherRisks.Drought.Details,
			AffectedCrops: []string{"rice", "sugarcane", "maize"},
		})
	}
	if lvl := weatherRisks.Flood.Level; lvl == "moderate" || lvl == "high" {
		risks = append(risks, domain.Risk{
			Type: "weather", Severity: lvl, Description: weatherRisks.Flood.Details,
			AffectedCrops: []string{"groundnut", "cotton", "chickpea"},
		})
	}
	if lvl := weatherRisks.DiseasePressure.Level; lvl == "moderate" || lvl == "high" {
		risks = append(risks, domain.Risk{
			Type: "disease", Severity: lvl, Description: weatherRisks.DiseasePressure.Details,
			AffectedCrops: []string{"rice", "cotton", "potato"},
		})
	}

	risks = append(risks, domain.Risk{
		Type: "market", Severity: "low", Description: "Price volatility possible depending on market demand",
		Mitigation: "Register with local procurement agency",
	})

	return risks
}

// suggestPrecautions builds a risk-driven precaution list with a fixed
// baseline always appended, capped at 10.
func suggestPrecautions(risks []domain.Risk) []domain.Precaution {
	var out []domain.Precaution

	for _, r := range risks {
		switch r.Type {
		case "weather":
			if strings.Contains(strings.ToLower(r.Description), "drought") || strings.Contains(strings.ToLower(r.Description), "rainfall") {
				out = append(out,
					domain.Precaution{Action: "Install drip or sprinkler irrigation where feasible", Priority: "high", Timing: "before_sowing"},
					domain.Precaution{Action: "Choose drought-tolerant varieties", Priority: "high", Timing: "at_sowing"},
					domain.Precaution{Action: "Mulch to conserve soil moisture", Priority: "medium", Timing: "post_sowing"},
				)
			} else {
				out = append(out,
					domain.Precaution{Action: "Ensure field drainage channels are clear", Priority: "high", Timing: "before_sowing"},
					domain.Precaution{Action: "Avoid low-lying plots for this season", Priority: "medium", Timing: "at_sowing"},
					domain.Precaution{Action: "Monitor weather advisories for heavy rainfall", Priority: "medium", Timing: "ongoing"},
				)
			}
		case "disease":
			out = append(out,
				domain.Precaution{Action: "Scout fields regularly for early disease symptoms", Priority: "high", Timing: "ongoing"},
				domain.Precaution{Action: "Apply preventive fungicide per local advisory", Priority: "medium", Timing: "pre_disease_onset"},
				domain.Precaution{Action: "Maintain plant spacing for air circulation", Priority: "medium", Timing: "at_sowing"},
			)
		case "soil":
			out = append(out,
				domain.Precaution{Action: "Test soil before the next sowing cycle", Priority: "medium", Timing: "before_sowing"},
				domain.Precaution{Action: "Apply organic amendments to improve structure", Priority: "medium", Timing: "before_sowing"},
				domain.Precaution{Action: "Avoid field operations when soil is waterlogged", Priority: "low", Timing: "ongoing"},
			)
		}
	}

	out = append(out,
		domain.Precaution{Action: "Register for crop insurance under PMFBY", Priority: "high", Timing: "before_sowing"},
		domain.Precaution{Action: "Register with local mandi for MSP procurement", Priority: "medium", Timing: "pre_harvest"},
		domain.Precaution{Action: "Maintain records of inputs and yields for future planning", Priority: "low", Timing: "ongoing"},
	)

	if len(out) > 10 {
		out = out[:10]
	}
	return out
}
