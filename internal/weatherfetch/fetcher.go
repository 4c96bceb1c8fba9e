// Package weatherfetch wraps the Open-Meteo forecast API into the flat
// weather observation shape the Weather Agent consumes, adapted from the
// teacher's weather-tool-v2 HTTP client.
package weatherfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/resilience"
)

// Observation is the flattened live-weather snapshot the Weather Agent
// folds into its weather_data structure.
type Observation struct {
	CurrentTemp     float64
	CurrentHumidity int
	CurrentPrecip   float64
	WeatherCode     int
	TempMin         float64 // mean of the 7-day daily minimums
	TempMax         float64 // mean of the 7-day daily maximums
	Rainfall        float64 // estimated monthly rainfall: 7-day total * 4
	Humidity        int     // equal to CurrentHumidity; kept distinct for clarity at call sites
	ForecastDays    int
	FetchedAt       time.Time
}

type openMeteoResponse struct {
	Current *struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      int     `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
	Daily *struct {
		TempMax               []float64 `json:"temperature_2m_max"`
		TempMin               []float64 `json:"temperature_2m_min"`
		PrecipitationSum      []float64 `json:"precipitation_sum"`
		PrecipitationProbMax  []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Fetcher calls Open-Meteo for a 7-day current+daily forecast.
type Fetcher struct {
	baseURL string
	client  *http.Client
	cb      *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
	logger  core.Logger
}

// NewFetcher constructs a Fetcher against baseURL (normally
// https://api.open-meteo.com/v1) with the given timeout.
func NewFetcher(baseURL string, timeout time.Duration, cbConfig core.CircuitBreakerConfig, logger core.Logger) *Fetcher {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	transport := otelhttp.NewTransport(&http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	})
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Transport: transport, Timeout: timeout},
		cb:      resilience.NewCircuitBreaker("weather_fetch", cbConfig, logger),
		retry:   resilience.DefaultRetryConfig(),
		logger:  logger,
	}
}

// Fetch retrieves the live forecast for (lat, lon). Returns (nil, false) on
// any failure; the Weather Agent falls back to its historical profile.
func (f *Fetcher) Fetch(ctx context.Context, lat, lon float64) (*Observation, bool) {
	var obs *Observation

	err := resilience.RetryWithCircuitBreaker(ctx, f.retry, f.cb, func() error {
		q := url.Values{}
		q.Set("latitude", fmt.Sprintf("%.4f", lat))
		q.Set("longitude", fmt.Sprintf("%.4f", lon))
		q.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code")
		q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max")
		q.Set("timezone", "Asia/Kolkata")
		q.Set("forecast_days", "7")

		reqURL := fmt.Sprintf("%s/forecast?%s", f.baseURL, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "FarmerAssistant/1.0")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: open-meteo status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
		}

		var decoded openMeteoResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("%w: decode open-meteo response: %v", core.ErrUpstreamUnavailable, err)
		}
		if decoded.Daily == nil || len(decoded.Daily.TempMin) == 0 || len(decoded.Daily.TempMax) == 0 {
			return fmt.Errorf("%w: open-meteo returned no daily forecast", core.ErrUpstreamUnavailable)
		}

		avgTempMin := mean(decoded.Daily.TempMin)
		avgTempMax := mean(decoded.Daily.TempMax)
		totalRainfall := sum(decoded.Daily.PrecipitationSum)

		result := &Observation{
			TempMin:      avgTempMin,
			TempMax:      avgTempMax,
			Rainfall:     totalRainfall * 4,
			ForecastDays: len(decoded.Daily.TempMin),
		}
		if decoded.Current != nil {
			result.CurrentTemp = decoded.Current.Temperature
			result.CurrentHumidity = decoded.Current.Humidity
			result.Humidity = decoded.Current.Humidity
			result.CurrentPrecip = decoded.Current.Precipitation
			result.WeatherCode = decoded.Current.WeatherCode
		}
		obs = result
		return nil
	})

	if err != nil {
		f.logger.Warn("weather fetch failed", map[string]interface{}{"lat": lat, "lon": lon, "error": err.Error()})
		return nil, false
	}
	obs.FetchedAt = time.Now()
	return obs, true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
