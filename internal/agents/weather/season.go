// Package weather implements the Weather Agent: season determination,
// live/historical weather assembly, suitability scoring, risk assessment,
// irrigation guidance, and weather-suitable crop ranking.
package weather

import (
	"strings"
	"time"
)

var seasonKeywords = map[string][]string{
	"kharif": {"kharif", "monsoon season", "summer crop", "june", "july", "august", "september"},
	"rabi":   {"rabi", "winter season", "winter crop", "november", "december", "january", "february", "march"},
	"zaid":   {"zaid", "zayad", "summer season", "pre-monsoon"},
}

// determineSeason matches season keywords in the query; absent a match it
// derives the season from the current calendar month.
func determineSeason(query string, now time.Time) string {
	lower := strings.ToLower(query)
	for _, season := range []string{"kharif", "rabi", "zaid"} {
		for _, kw := range seasonKeywords[season] {
			if strings.Contains(lower, kw) {
				return season
			}
		}
	}

	month := int(now.Month())
	switch {
	case month >= 6 && month <= 10:
		return "kharif"
	case month == 11 || month == 12 || month <= 3:
		return "rabi"
	default:
		return "zaid"
	}
}
