package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/resilience"
)

// GeocodeResult is a resolved coordinate from the geocoding directory.
type GeocodeResult struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

type nominatimEntry struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocoderClient queries the Nominatim (OpenStreetMap) search API, rate
// limited to Nominatim's politeness policy of at most one request per
// second and always carrying an identifying User-Agent.
type GeocoderClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	cb        *resilience.CircuitBreaker
	retry     *resilience.RetryConfig
	logger    core.Logger
}

// NewGeocoderClient constructs a client against baseURL (normally
// https://nominatim.openstreetmap.org).
func NewGeocoderClient(baseURL, userAgent string, timeout time.Duration, cbConfig core.CircuitBreakerConfig, logger core.Logger) *GeocoderClient {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	if userAgent == "" {
		userAgent = "FarmerAdvisor/1.0"
	}
	transport := otelhttp.NewTransport(&http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	})
	return &GeocoderClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Transport: transport, Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		cb:        resilience.NewCircuitBreaker("geocoder", cbConfig, logger),
		retry:     resilience.DefaultRetryConfig(),
		logger:    logger,
	}
}

// Geocode resolves pincode (qualified with ", India") to a coordinate.
// Returns (zero, false) on any failure; the caller falls through to the
// next resolution step.
func (c *GeocoderClient) Geocode(ctx context.Context, pincode string) (GeocodeResult, bool) {
	var result GeocodeResult

	err := resilience.RetryWithCircuitBreaker(ctx, c.retry, c.cb, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		q := url.Values{}
		q.Set("q", fmt.Sprintf("%s, India", pincode))
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("countrycodes", "in")

		reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: geocoder status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
		}

		var decoded []nominatimEntry
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("%w: decode geocoder response: %v", core.ErrUpstreamUnavailable, err)
		}
		if len(decoded) == 0 {
			return fmt.Errorf("%w: geocoder no match for %s", core.ErrUpstreamUnavailable, pincode)
		}

		lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
		if err != nil {
			return fmt.Errorf("%w: bad lat from geocoder: %v", core.ErrUpstreamUnavailable, err)
		}
		lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
		if err != nil {
			return fmt.Errorf("%w: bad lon from geocoder: %v", core.ErrUpstreamUnavailable, err)
		}

		result = GeocodeResult{Lat: lat, Lon: lon, DisplayName: decoded[0].DisplayName}
		return nil
	})

	if err != nil {
		c.logger.Warn("geocode lookup failed", map[string]interface{}{"pincode": pincode, "error": err.Error()})
		return GeocodeResult{}, false
	}
	return result, true
}
