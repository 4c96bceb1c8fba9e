package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subham11/farmer-advisor-go/internal/agents/cropplanning"
	"github.com/subham11/farmer-advisor-go/internal/agents/soil"
	"github.com/subham11/farmer-advisor-go/internal/agents/weather"
	"github.com/subham11/farmer-advisor-go/internal/location"
	"github.com/subham11/farmer-advisor-go/internal/orchestrator"
	"github.com/subham11/farmer-advisor-go/internal/ratelimit"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func newTestHandler() http.HandlerFunc {
	store := memory.NewInMemoryStore()
	resolver := location.NewResolver(store, nil, nil, nil)
	engine := orchestrator.New(
		soil.New(store, nil),
		weather.New(resolver, nil, store, nil),
		cropplanning.New(nil),
		nil, nil, nil,
	)
	limiter := ratelimit.New(store, 3600, 5, nil)
	return newQueryHandler(engine, limiter, nil)
}

func TestQueryHandlerRejectsEmptyQuery(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBufferString(`{"query":""}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHandlerReturnsOrchestratorResult(t *testing.T) {
	handler := newTestHandler()
	body, _ := json.Marshal(queryRequest{Query: "my soil is clay with pH 6.5, what crops for kharif season"})
	req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "my soil is clay with pH 6.5, what crops for kharif season", result["query"])
	assert.NotNil(t, result["soil_result"])
}

func TestQueryHandlerRejectsNonPost(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/query", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestQueryHandlerRateLimitsAfterMax(t *testing.T) {
	store := memory.NewInMemoryStore()
	resolver := location.NewResolver(store, nil, nil, nil)
	engine := orchestrator.New(
		soil.New(store, nil),
		weather.New(resolver, nil, store, nil),
		cropplanning.New(nil),
		nil, nil, nil,
	)
	limiter := ratelimit.New(store, 3600, 1, nil)
	handler := newQueryHandler(engine, limiter, nil)

	body, _ := json.Marshal(queryRequest{Query: "rabi season crops"})

	req1 := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBuffer(body))
	req1.Header.Set("X-Session-Id", "farmer-1")
	rec1 := httptest.NewRecorder()
	handler(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBuffer(body))
	req2.Header.Set("X-Session-Id", "farmer-1")
	rec2 := httptest.NewRecorder()
	handler(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}
