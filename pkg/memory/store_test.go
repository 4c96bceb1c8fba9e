package memory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_CoordsRoundTrip(t *testing.T) {
	s := NewInMemoryStore()

	_, found := s.GetCoords("560001")
	assert.False(t, found)

	ok := s.SaveCoords("560001", 12.97, 77.59, "live", "Bengaluru")
	require.True(t, ok)

	c, found := s.GetCoords("560001")
	require.True(t, found)
	assert.InDelta(t, 12.97, c.Latitude, 1e-9)
	assert.Equal(t, "live", c.Source)
}

func TestInMemoryStore_SoilProfileNormalizesRegion(t *testing.T) {
	s := NewInMemoryStore()
	require.True(t, s.SaveSoilProfile("  West Bengal ", SoilProfile{SoilType: "alluvial"}, "user_query_extracted"))

	p, found := s.GetSoilProfile("west_bengal")
	require.True(t, found)
	assert.Equal(t, "alluvial", p.SoilType)
	assert.Equal(t, "user_query_extracted", p.Source)
}

func TestInMemoryStore_ExpiryIsLazy(t *testing.T) {
	s := &InMemoryStore{data: map[string]entry{}}
	key := compositeKey("PINCODE#110001", "COORDS")
	data, _ := json.Marshal(Coords{Latitude: 28.6, Longitude: 77.2})
	s.data[key] = entry{data: data, expiry: time.Now().Add(-time.Second)}

	_, found := s.GetCoords("110001")
	assert.False(t, found, "expired entries must not be returned")

	s.mu.RLock()
	_, stillPresent := s.data[key]
	s.mu.RUnlock()
	assert.False(t, stillPresent, "expired entries are tombstoned on read")
}

func TestInMemoryStore_RateLimitRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ok := s.RateLimitWrite("session-1#asr", RateLimitState{Count: 3, WindowStart: 1000}, time.Hour)
	require.True(t, ok)

	state, found := s.RateLimitRead("session-1#asr")
	require.True(t, found)
	assert.Equal(t, 3, state.Count)
	assert.EqualValues(t, 1000, state.WindowStart)
}
