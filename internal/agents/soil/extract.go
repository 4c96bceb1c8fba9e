// Package soil implements the Soil Agent: parameter extraction from free
// text, location-profile fallback, health scoring, and constraint and
// recommendation generation.
package soil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

var (
	phPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ph\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)ph\s+level\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*ph\b`),
		regexp.MustCompile(`(?i)acidity\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)`),
	}

	npkCompositeRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[-:]\s*(\d+(?:\.\d+)?)\s*[-:]\s*(\d+(?:\.\d+)?)`)

	nitrogenRe = regexp.MustCompile(`(?i)(?:nitrogen|n|urea)\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(?:ppm|kg/ha)?`)
	phosphorusRe = regexp.MustCompile(`(?i)(?:phosphorus|phosphate|p)\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(?:ppm|kg/ha)?`)
	potassiumRe = regexp.MustCompile(`(?i)(?:potassium|potash|k)\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(?:ppm|kg/ha)?`)

	organicMatterRe = regexp.MustCompile(`(?i)organic\s*matter\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*%?`)

	micronutrientPatterns = map[string]*regexp.Regexp{
		"zinc":      regexp.MustCompile(`(?i)zinc\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
		"iron":      regexp.MustCompile(`(?i)iron\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
		"manganese": regexp.MustCompile(`(?i)manganese\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
		"copper":    regexp.MustCompile(`(?i)copper\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
		"boron":     regexp.MustCompile(`(?i)boron\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
		"sulfur":    regexp.MustCompile(`(?i)sulfur\s*(?:is|=|:)?\s*(\d+(?:\.\d+)?)\s*(ppm)?`),
	}

	micronutrientDeficiencyKeywords = map[string][]string{
		"zinc":      {"zinc deficient", "zinc deficiency"},
		"iron":      {"iron deficient", "iron deficiency", "chlorosis"},
		"manganese": {"manganese deficient", "manganese deficiency"},
		"copper":    {"copper deficient", "copper deficiency"},
		"boron":     {"boron deficient", "boron deficiency"},
		"sulfur":    {"sulfur deficient", "sulfur deficiency"},
	}
)

// extractedParams is the intermediate result of parsing a query for soil
// parameters before the location fallback is merged in.
type extractedParams struct {
	soilType              string
	soilTypeFound         bool
	ph                    float64
	phFound               bool
	nitrogen              float64
	phosphorus            float64
	potassium             float64
	organicMatterFraction float64
	organicMatterFound    bool
	micronutrients        map[string]micronutrientReading
}

type micronutrientReading struct {
	value  *float64
	status string
	source string
}

// extractSoilType returns the first synonym group matched in query, in
// table order, and whether anything matched at all.
func extractSoilType(query string) (string, bool) {
	lower := strings.ToLower(query)
	for _, entry := range knowledge.SoilTypeSynonyms {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Type, true
			}
		}
	}
	return "", false
}

// extractPH tries each ph pattern in order and accepts the first value in
// [0, 14].
func extractPH(query string) (float64, bool) {
	for _, re := range phPatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v >= 0 && v <= 14 {
			return v, true
		}
	}
	return 0, false
}

// extractNPK tries the composite n-p-k pattern first, then falls back to
// individual nutrient patterns (with aliases), then applies qualitative
// floor/ceiling phrases.
func extractNPK(query string) (n, p, k float64) {
	if m := npkCompositeRe.FindStringSubmatch(query); m != nil {
		n = mustFloat(m[1])
		p = mustFloat(m[2])
		k = mustFloat(m[3])
	} else {
		if m := nitrogenRe.FindStringSubmatch(query); m != nil {
			n = mustFloat(m[1])
		}
		if m := phosphorusRe.FindStringSubmatch(query); m != nil {
			p = mustFloat(m[1])
		}
		if m := potassiumRe.FindStringSubmatch(query); m != nil {
			k = mustFloat(m[1])
		}
	}

	lower := strings.ToLower(query)
	if (strings.Contains(lower, "nitrogen deficient") || strings.Contains(lower, "low nitrogen")) && n == 0 {
		n = 10
	}
	if (strings.Contains(lower, "high nitrogen") || strings.Contains(lower, "rich nitrogen")) && n < 50 {
		n = 50
	}
	return n, p, k
}

// extractOrganicMatter accepts a numeric match (dividing by 100 when the
// literal value reads like a percentage, i.e. > 10) and clamps on the
// qualitative "rich organic"/"low organic" phrases.
func extractOrganicMatter(query string) (float64, bool) {
	lower := strings.ToLower(query)

	if m := organicMatterRe.FindStringSubmatch(query); m != nil {
		v := mustFloat(m[1])
		if v > 10 {
			v = v / 100
		}
		if strings.Contains(lower, "rich organic") && v < 0.8 {
			v = 0.8
		}
		if strings.Contains(lower, "low organic") && v > 0.3 {
			v = 0.3
		}
		return clamp(v, 0, 1), true
	}

	if strings.Contains(lower, "rich organic") {
		return 0.8, true
	}
	if strings.Contains(lower, "low organic") {
		return 0.3, true
	}
	return 0, false
}

// extractMicronutrients scans for each of the six tracked micronutrients,
// preferring a numeric reading over a bare deficiency keyword.
func extractMicronutrients(query string) map[string]micronutrientReading {
	lower := strings.ToLower(query)
	out := make(map[string]micronutrientReading)

	for name, re := range micronutrientPatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			v := mustFloat(m[1])
			out[name] = micronutrientReading{value: &v, source: "user_query"}
			continue
		}
		for _, kw := range micronutrientDeficiencyKeywords[name] {
			if strings.Contains(lower, kw) {
				out[name] = micronutrientReading{status: "deficient", source: "user_indication"}
				break
			}
		}
	}
	return out
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
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
