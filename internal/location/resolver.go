// Package location implements progressive-fallback location resolution:
// given a pincode/district/state hint, produce coordinates plus a
// fallback level and confidence, self-learning unknown pincodes via two
// external HTTP directories and the Learning Store.
package location

import (
	"context"
	"regexp"
	"strings"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/internal/knowledge"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
)

// FallbackLevel records how specifically a location was resolved. Higher
// specificity must carry higher confidence.
type FallbackLevel string

const (
	LevelLive            FallbackLevel = "live"
	LevelLearnedPincode  FallbackLevel = "learned_pincode"
	LevelLearnedDistrict FallbackLevel = "learned_district"
	LevelLearnedState    FallbackLevel = "learned_state"
	LevelStaticPincode   FallbackLevel = "static_pincode"
	LevelStaticState     FallbackLevel = "static_state"
	LevelDefault         FallbackLevel = "default"
)

// confidenceByLevel pins the default confidence per fallback level, keeping
// the monotonicity invariant centralized instead of scattered through the
// resolution chain.
var confidenceByLevel = map[FallbackLevel]float64{
	LevelStaticPincode:   0.9,
	LevelLearnedPincode:  0.85,
	LevelLive:            0.9,
	LevelStaticState:     0.6,
	LevelDefault:         0.3,
}

// Hint is the location input: any subset of pincode/district/state.
type Hint struct {
	Pincode  string
	District string
	State    string
}

// Result is the resolved location context.
type Result struct {
	Lat           float64
	Lon           float64
	FallbackLevel FallbackLevel
	Confidence    float64
	State         string
	District      string
	Pincode       string
}

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

// Resolver implements the five-step fallback ladder, stopping at first
// success and falling through on any external failure.
type Resolver struct {
	store      memory.Store
	indiaPost  *IndiaPostClient
	geocoder   *GeocoderClient
	logger     core.Logger
}

// NewResolver wires a Resolver against the Learning Store and the two
// external directories.
func NewResolver(store memory.Store, indiaPost *IndiaPostClient, geocoder *GeocoderClient, logger core.Logger) *Resolver {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &Resolver{store: store, indiaPost: indiaPost, geocoder: geocoder, logger: logger}
}

// Resolve runs the progressive fallback chain. It never returns an error:
// every external or storage failure degrades to the next step.
func (r *Resolver) Resolve(ctx context.Context, hint Hint) Result {
	pincode := strings.TrimSpace(hint.Pincode)
	state := normalize(hint.State)
	district := normalize(hint.District)

	// Step 1: static pincode coordinates.
	if pincodeRe.MatchString(pincode) {
		if ll, ok := knowledge.StaticPincodeCoordinates[pincode]; ok {
			return r.result(ll.Lat, ll.Lon, LevelStaticPincode, hint, pincode)
		}
	}

	// Step 2: learned pincode coordinates.
	if pincodeRe.MatchString(pincode) {
		if c, found := r.store.GetCoords(pincode); found {
			res := r.result(c.Latitude, c.Longitude, LevelLearnedPincode, hint, pincode)
			if loc, found := r.store.GetLocation(pincode); found {
				res.State = firstNonEmpty(hint.State, loc.State)
				res.District = firstNonEmpty(hint.District, loc.District)
			}
			return res
		}
	}

	// Step 3: India Post directory, then geocoder.
	if pincodeRe.MatchString(pincode) && r.indiaPost != nil {
		if payload, ok := r.indiaPost.Lookup(ctx, pincode); ok {
			r.store.SaveLocation(pincode, *payload)

			if r.geocoder != nil {
				if coords, ok := r.geocoder.Geocode(ctx, pincode); ok {
					r.store.SaveCoords(pincode, coords.Lat, coords.Lon, "live", coords.DisplayName)
					res := Result{
						Lat: coords.Lat, Lon: coords.Lon,
						FallbackLevel: LevelLive, Confidence: confidenceByLevel[LevelLive],
						State: firstNonEmpty(hint.State, payload.State),
						District: firstNonEmpty(hint.District, payload.District),
						Pincode: pincode,
					}
					return res
				}
			}

			// Geocoding failed: fall to the learned state's static coordinates.
			learnedState := normalize(payload.State)
			if ll, ok := knowledge.StaticStateCoordinates[learnedState]; ok {
				return Result{
					Lat: ll.Lat, Lon: ll.Lon,
					FallbackLevel: LevelStaticState, Confidence: confidenceByLevel[LevelStaticState],
					State: payload.State, District: firstNonEmpty(hint.District, payload.District),
					Pincode: pincode,
				}
			}
		}
	}

	// Step 4: static state coordinates.
	if state != "" {
		if ll, ok := knowledge.StaticStateCoordinates[state]; ok {
			return Result{
				Lat: ll.Lat, Lon: ll.Lon,
				FallbackLevel: LevelStaticState, Confidence: confidenceByLevel[LevelStaticState],
				State: hint.State, District: hint.District, Pincode: pincode,
			}
		}
	}

	// Step 5: country-wide default.
	_ = district
	return Result{
		Lat: knowledge.DefaultCoordinates.Lat, Lon: knowledge.DefaultCoordinates.Lon,
		FallbackLevel: LevelDefault, Confidence: confidenceByLevel[LevelDefault],
		State: hint.State, District: hint.District, Pincode: pincode,
	}
}

func (r *Resolver) result(lat, lon float64, level FallbackLevel, hint Hint, pincode string) Result {
	return Result{
		Lat: lat, Lon: lon, FallbackLevel: level, Confidence: confidenceByLevel[level],
		State: hint.State, District: hint.District, Pincode: pincode,
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
