// Command server is the composition root: it wires the Learning Store,
// Location Resolver, external HTTP clients, the three agents, and the
// Orchestrator, then serves the Query entry-point over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/agents/cropplanning"
	"github.com/subham11/farmer-advisor-go/internal/agents/soil"
	"github.com/subham11/farmer-advisor-go/internal/agents/weather"
	"github.com/subham11/farmer-advisor-go/internal/llm"
	"github.com/subham11/farmer-advisor-go/internal/location"
	"github.com/subham11/farmer-advisor-go/internal/orchestrator"
	"github.com/subham11/farmer-advisor-go/internal/ratelimit"
	"github.com/subham11/farmer-advisor-go/internal/retrieval"
	"github.com/subham11/farmer-advisor-go/internal/weatherfetch"
	"github.com/subham11/farmer-advisor-go/pkg/logger"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

func main() {
	cfg := core.NewConfig()
	log := logger.New(cfg.Logging.Level)

	store := newStore(cfg, log)
	defer store.Close()

	cbConfig := core.CircuitBreakerConfig{
		Enabled:          true,
		Threshold:        cfg.Resilience.CircuitThreshold,
		Timeout:          cfg.Resilience.CircuitTimeout,
		HalfOpenRequests: 3,
	}

	indiaPost := location.NewIndiaPostClient(cfg.Location.IndiaPostBaseURL, cfg.Location.DirectoryTimeout, cbConfig, log)
	geocoder := location.NewGeocoderClient(cfg.Location.GeocoderBaseURL, cfg.Location.GeocoderUserAgent, cfg.Location.DirectoryTimeout, cbConfig, log)
	resolver := location.NewResolver(store, indiaPost, geocoder, log)
	fetcher := weatherfetch.NewFetcher(cfg.Weather.BaseURL, cfg.Weather.Timeout, cbConfig, log)
	retriever := retrieval.New(cfg.Retrieval, cbConfig, log)

	var generator llm.Generator = llm.NoOpGenerator{}
	if cfg.LLM.Enabled {
		bg, err := llm.NewBedrockGenerator(context.Background(), cfg.LLM.Region, cfg.LLM.ModelID, cbConfig, log)
		if err != nil {
			log.Warn("bedrock generator unavailable, falling back to no-op", map[string]interface{}{"error": err.Error()})
		} else {
			generator = bg
		}
	}

	soilAgent := soil.New(store, log)
	weatherAgent := weather.New(resolver, fetcher, store, log)
	cropAgent := cropplanning.New(log)
	engine := orchestrator.New(soilAgent, weatherAgent, cropAgent, retriever, generator, log)
	limiter := ratelimit.New(store, int64(cfg.RateLimit.WindowSeconds.Seconds()), cfg.RateLimit.MaxPerWindow, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/query", newQueryHandler(engine, limiter, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("starting farmer advisory engine", map[string]interface{}{"port": cfg.Port, "namespace": cfg.Namespace})

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

func newStore(cfg *core.Config, log core.Logger) memory.Store {
	if cfg.Redis.URL == "" {
		log.Info("no redis url configured, using in-memory learning store", nil)
		return memory.NewInMemoryStore()
	}
	store, err := memory.NewRedisStore(cfg.Redis.URL, cfg.Redis.Namespace, log)
	if err != nil {
		log.Warn("redis learning store unavailable, falling back to in-memory", map[string]interface{}{"error": err.Error()})
		return memory.NewInMemoryStore()
	}
	return store
}
