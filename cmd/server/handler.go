package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/domain"
	"github.com/subham11/farmer-advisor-go/internal/orchestrator"
	"github.com/subham11/farmer-advisor-go/internal/ratelimit"
)

// queryRequest is the wire shape of the Query entry-point.
type queryRequest struct {
	Query           string              `json:"query"`
	Pincode         string              `json:"pincode"`
	District        string              `json:"district"`
	State           string              `json:"state"`
	Language        string              `json:"language"`
	UserProfile     *userProfileRequest `json:"user_profile"`
	PreviousQueries []string            `json:"previous_queries"`
}

type userProfileRequest struct {
	FarmSizeHa          float64 `json:"farm_size_ha"`
	IrrigationAvailable bool    `json:"irrigation_available"`
	PreviousCrop        string  `json:"previous_crop"`
	Budget              float64 `json:"budget"`
}

const maxPreviousQueries = 5

// newQueryHandler builds the HTTP handler for the Query entry-point: it
// validates the required query field (bad_request short-circuits),
// applies the rate limiter, then always returns a structured 200 body —
// internal agent failure never produces a 500.
func newQueryHandler(engine *orchestrator.Orchestrator, limiter *ratelimit.Limiter, logger core.Logger) http.HandlerFunc {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, core.ToolResponse{
				Success: false,
				Error:   &core.ToolError{Code: string(core.KindBadRequest), Message: "POST required"},
			})
			return
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("malformed query request", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusBadRequest, core.ToolResponse{
				Success: false,
				Error:   &core.ToolError{Code: string(core.KindBadRequest), Message: "malformed request body"},
			})
			return
		}

		if strings.TrimSpace(req.Query) == "" {
			writeJSON(w, http.StatusBadRequest, core.ToolResponse{
				Success: false,
				Error:   &core.ToolError{Code: string(core.KindBadRequest), Message: "query is required"},
			})
			return
		}

		sessionKey := firstNonEmpty(r.Header.Get("X-Session-Id"), r.RemoteAddr) + "#query"
		if status := limiter.CheckAndIncrement(sessionKey); !status.Allowed {
			w.Header().Set("Retry-After", itoa64(status.ResetSeconds))
			writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"error":               "rate_limited",
				"retry_after_seconds": status.ResetSeconds,
			})
			return
		}

		if len(req.PreviousQueries) > maxPreviousQueries {
			req.PreviousQueries = req.PreviousQueries[len(req.PreviousQueries)-maxPreviousQueries:]
		}

		var profile *domain.UserProfile
		if req.UserProfile != nil {
			profile = &domain.UserProfile{
				FarmSizeHa:          req.UserProfile.FarmSizeHa,
				IrrigationAvailable: req.UserProfile.IrrigationAvailable,
				PreviousCrop:        req.UserProfile.PreviousCrop,
				Budget:              req.UserProfile.Budget,
			}
		}

		result := engine.Run(r.Context(), orchestrator.Query{
			Query:           req.Query,
			Pincode:         req.Pincode,
			District:        req.District,
			State:           req.State,
			Language:        req.Language,
			UserProfile:     profile,
			PreviousQueries: req.PreviousQueries,
		})

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "unknown"
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
