// Package intent implements the Intent Router: keyword scoring against the
// intent patterns table, agent selection rules, and previous-query
// continuity.
package intent

import (
	"strings"

	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
)

// Analyze scores query against the intent patterns and derives the agent
// set to invoke.
func Analyze(query string, previousQueries []string) domain.IntentAnalysis {
	lower := strings.ToLower(query)
	wordCount := len(strings.Fields(query))

	scores := make(map[string]float64, len(knowledge.IntentPatterns))
	var totalScore float64
	for name, pattern := range knowledge.IntentPatterns {
		hits := 0
		for _, kw := range pattern.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > 0 {
			scores[name] = float64(hits) * pattern.Weight
			totalScore += scores[name]
		}
	}

	var detected []string
	for name := range scores {
		detected = append(detected, name)
	}

	agentSet := make(map[string]bool, 3)
	if _, ok := scores["soil_analysis"]; ok {
		agentSet["soil"] = true
	}
	if _, ok := scores["weather_analysis"]; ok {
		agentSet["weather"] = true
	}
	if _, ok := scores["crop_planning"]; ok {
		agentSet["crop_planning"] = true
		agentSet["soil"] = true
		agentSet["weather"] = true
	}
	if _, ok := scores["market_info"]; ok {
		agentSet["crop_planning"] = true
		agentSet["soil"] = true
		agentSet["weather"] = true
	}

	if len(previousQueries) > 0 {
		recent := strings.ToLower(previousQueries[len(previousQueries)-1])
		if strings.Contains(recent, "soil") {
			agentSet["soil"] = true
		}
		if strings.Contains(recent, "season") || strings.Contains(recent, "weather") ||
			strings.Contains(recent, "kharif") || strings.Contains(recent, "rabi") {
			agentSet["weather"] = true
		}
	}

	isDefault := false
	if len(agentSet) == 0 {
		agentSet["soil"] = true
		agentSet["weather"] = true
		agentSet["crop_planning"] = true
		isDefault = true
	}

	confidence := 0.0
	if wordCount > 0 {
		confidence = totalScore / (float64(wordCount) * 0.5)
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	if len(detected) > 0 && confidence < 0.6 {
		confidence = 0.6
	}

	agents := orderedAgents(agentSet)

	return domain.IntentAnalysis{
		Agents:             agents,
		Confidence:         round2(confidence),
		DetectedIntents:    detected,
		IsDefaultSelection: isDefault,
	}
}

// orderedAgents returns a deterministic ordering (soil, weather,
// crop_planning) so agents_invoked is stable across runs.
func orderedAgents(set map[string]bool) []string {
	order := []string{"soil", "weather", "crop_planning"}
	out := make([]string, 0, len(set))
	for _, a := range order {
		if set[a] {
			out = append(out, a)
		}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
