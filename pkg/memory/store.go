// Package memory implements the Learning Store: a persistent
// key/value store for learned postal codes, locations, soil profiles, and
// weather observations, backed by Redis with an in-memory fallback for
// tests and local development. Every operation is idempotent and
// caller-tolerant of failure: a store outage degrades to nil reads and
// false writes, it never bubbles an error the caller must handle.
package memory

import (
	"strings"
	"time"
)

// Coords is a learned or static latitude/longitude pair.
type Coords struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Source      string    `json:"source"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationPayload is the full resolved location detail for a pincode,
// as returned by the India Post directory.
type LocationPayload struct {
	State            string   `json:"state"`
	District         string   `json:"district"`
	Division         string   `json:"division"`
	Region           string   `json:"region"`
	Circle           string   `json:"circle"`
	Block            string   `json:"block"`
	PostOffices      []string `json:"post_offices"`
	PrimaryLocation  string   `json:"primary_location"`
	CreatedAt        time.Time `json:"created_at"`
}

// SoilProfile is a learned or regional default soil baseline.
type SoilProfile struct {
	SoilType          string  `json:"soil_type"`
	PH                float64 `json:"ph"`
	Fertility         string  `json:"fertility"`
	OrganicMatterFrac float64 `json:"organic_matter_fraction"`
	Source            string  `json:"source"`
}

// WeatherObservation is one append-only historical weather data point for
// a (region, season, month).
type WeatherObservation struct {
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Rainfall float64 `json:"rainfall_mm"`
	Humidity float64 `json:"humidity_percent"`
	Source   string  `json:"source"`
}

// RateLimitState is the fixed-window counter state for one (session, kind).
type RateLimitState struct {
	Count       int   `json:"request_count"`
	WindowStart int64 `json:"window_start"`
}

// Store is the Learning Store contract. Every method absorbs
// its own failures: reads return (nil, false) and writes return false when
// the backing store is unavailable, logged but never propagated.
type Store interface {
	GetCoords(pincode string) (*Coords, bool)
	SaveCoords(pincode string, lat, lon float64, source, displayName string) bool

	GetLocation(pincode string) (*LocationPayload, bool)
	SaveLocation(pincode string, payload LocationPayload) bool

	GetSoilProfile(region string) (*SoilProfile, bool)
	SaveSoilProfile(region string, profile SoilProfile, source string) bool

	GetWeatherProfile(region, season string) (*WeatherObservation, bool)
	SaveWeatherObservation(region, season string, obs WeatherObservation) bool

	RateLimitRead(sessionKind string) (*RateLimitState, bool)
	RateLimitWrite(sessionKind string, state RateLimitState, ttl time.Duration) bool

	Close() error
}

// TTLs binding per the data model: coordinates ~1 year, locations, soil
// profiles and weather observations ~2 years, rate limit windows carry
// their own short TTL computed by the caller.
const (
	ttlCoords   = 365 * 24 * time.Hour
	ttlLocation = 2 * 365 * 24 * time.Hour
	ttlSoil     = 2 * 365 * 24 * time.Hour
	ttlWeather  = 2 * 365 * 24 * time.Hour
)

// normalizeRegion lowercases a region key and replaces whitespace with
// underscores so lookups are stable regardless of input formatting.
func normalizeRegion(region string) string {
	r := strings.ToLower(strings.TrimSpace(region))
	return strings.Join(strings.Fields(r), "_")
}

func coordsKey(pincode string) (string, string) { return "PINCODE#" + pincode, "COORDS" }
func locationKey(pincode string) (string, string) { return "PINCODE#" + pincode, "LOCATION" }
func soilKey(region string) (string, string) {
	return "SOIL#" + normalizeRegion(region), "PROFILE"
}
func weatherKey(region, season string) (string, string) {
	month := time.Now().UTC().Format("2006-01")
	return "WEATHER#" + normalizeRegion(region), "OBS#" + strings.ToLower(season) + "#" + month
}
func rateLimitKey(sessionKind string) (string, string) {
	return "RATELIMIT#" + sessionKind, "WINDOW"
}

func compositeKey(partition, sort string) string {
	return partition + "|" + sort
}
