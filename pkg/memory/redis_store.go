package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/subham11/farmer-advisor-go/core"
)

// RedisStore implements Store on top of Redis, namespacing every key so
// multiple deployments can share one Redis instance, with a composite
// (partition, sort) key space rather than a flat key/value contract.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    core.Logger
	timeout   time.Duration
}

// NewRedisStore dials redisURL and verifies connectivity with a bounded
// ping. namespace scopes every key (defaults to "learning").
func NewRedisStore(redisURL, namespace string, logger core.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if namespace == "" {
		namespace = "learning"
	}
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	return &RedisStore{client: client, namespace: namespace, logger: logger, timeout: 3 * time.Second}, nil
}

func (s *RedisStore) buildKey(partition, sort string) string {
	return fmt.Sprintf("%s:%s", s.namespace, compositeKey(partition, sort))
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *RedisStore) get(partition, sort string, out interface{}) bool {
	ctx, cancel := s.ctx()
	defer cancel()

	data, err := s.client.Get(ctx, s.buildKey(partition, sort)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn("learning store read failed", map[string]interface{}{
			"partition": partition, "sort": sort, "error": err.Error(),
		})
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("learning store decode failed", map[string]interface{}{
			"partition": partition, "sort": sort, "error": err.Error(),
		})
		return false
	}
	return true
}

func (s *RedisStore) put(partition, sort string, value interface{}, ttl time.Duration) bool {
	ctx, cancel := s.ctx()
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("learning store encode failed", map[string]interface{}{
			"partition": partition, "sort": sort, "error": err.Error(),
		})
		return false
	}
	if err := s.client.Set(ctx, s.buildKey(partition, sort), data, ttl).Err(); err != nil {
		s.logger.Warn("learning store write failed", map[string]interface{}{
			"partition": partition, "sort": sort, "error": err.Error(),
		})
		return false
	}
	return true
}

func (s *RedisStore) GetCoords(pincode string) (*Coords, bool) {
	pk, sk := coordsKey(pincode)
	var c Coords
	if !s.get(pk, sk, &c) {
		return nil, false
	}
	return &c, true
}

func (s *RedisStore) SaveCoords(pincode string, lat, lon float64, source, displayName string) bool {
	pk, sk := coordsKey(pincode)
	return s.put(pk, sk, Coords{Latitude: lat, Longitude: lon, Source: source, DisplayName: displayName, CreatedAt: time.Now().UTC()}, ttlCoords)
}

func (s *RedisStore) GetLocation(pincode string) (*LocationPayload, bool) {
	pk, sk := locationKey(pincode)
	var l LocationPayload
	if !s.get(pk, sk, &l) {
		return nil, false
	}
	return &l, true
}

func (s *RedisStore) SaveLocation(pincode string, payload LocationPayload) bool {
	pk, sk := locationKey(pincode)
	payload.CreatedAt = time.Now().UTC()
	return s.put(pk, sk, payload, ttlLocation)
}

func (s *RedisStore) GetSoilProfile(region string) (*SoilProfile, bool) {
	pk, sk := soilKey(region)
	var p SoilProfile
	if !s.get(pk, sk, &p) {
		return nil, false
	}
	return &p, true
}

func (s *RedisStore) SaveSoilProfile(region string, profile SoilProfile, source string) bool {
	pk, sk := soilKey(region)
	profile.Source = source
	return s.put(pk, sk, profile, ttlSoil)
}

func (s *RedisStore) GetWeatherProfile(region, season string) (*WeatherObservation, bool) {
	pk, sk := weatherKey(region, season)
	var o WeatherObservation
	if !s.get(pk, sk, &o) {
		return nil, false
	}
	return &o, true
}

func (s *RedisStore) SaveWeatherObservation(region, season string, obs WeatherObservation) bool {
	pk, sk := weatherKey(region, season)
	return s.put(pk, sk, obs, ttlWeather)
}

func (s *RedisStore) RateLimitRead(sessionKind string) (*RateLimitState, bool) {
	pk, sk := rateLimitKey(sessionKind)
	var r RateLimitState
	if !s.get(pk, sk, &r) {
		return nil, false
	}
	return &r, true
}

func (s *RedisStore) RateLimitWrite(sessionKind string, state RateLimitState, ttl time.Duration) bool {
	pk, sk := rateLimitKey(sessionKind)
	return s.put(pk, sk, state, ttl)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
