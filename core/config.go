package core

import (
	"os"
	"strconv"
	"time"
)

// Config holds every configuration knob for the advisory engine. Values
// resolve in three layers, lowest priority first: struct defaults (the
// `default:` tags below), environment variables, then functional Options
// passed to NewConfig. LoadFromEnv reads ADVISOR_PORT, ADVISOR_NAMESPACE,
// the Redis URL and namespace, the rate-limit max and window,
// ADVISOR_SOLR_URL, the log level, the LLM region and ADVISOR_LLM_ENABLED;
// the other `env:` tags name variables that LoadFromEnv does not read, so
// those fields (directory and weather URLs and timeouts, default
// coordinates, retrieval collection and timeout, LLM model, resilience
// settings) keep their defaults unless set in code. This mirrors the configuration
// layering used throughout the framework this module is built on.
type Config struct {
	Port      int    `json:"port" env:"ADVISOR_PORT" default:"8080"`
	Namespace string `json:"namespace" env:"ADVISOR_NAMESPACE" default:"farmer-advisor"`

	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Location   LocationConfig
	Weather    WeatherConfig
	Retrieval  RetrievalConfig
	LLM        LLMConfig
	Logging    LoggingConfig
	Resilience ResilienceConfig

	logger Logger
}

// RedisConfig configures the Learning Store's Redis backend.
type RedisConfig struct {
	URL       string `env:"ADVISOR_REDIS_URL,REDIS_URL"`
	Namespace string `env:"ADVISOR_REDIS_NAMESPACE" default:"learning"`
}

// RateLimitConfig configures the per-session fixed-window limiter.
type RateLimitConfig struct {
	MaxPerWindow  int           `env:"ADVISOR_RATE_LIMIT_MAX" default:"5"`
	WindowSeconds time.Duration `env:"ADVISOR_RATE_LIMIT_WINDOW" default:"3600s"`
}

// LocationConfig configures the Location Resolver's external directories.
type LocationConfig struct {
	IndiaPostBaseURL    string        `env:"ADVISOR_INDIAPOST_URL" default:"https://api.postalpincode.in"`
	GeocoderBaseURL     string        `env:"ADVISOR_GEOCODER_URL" default:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent   string        `env:"ADVISOR_GEOCODER_USER_AGENT" default:"FarmerAdvisor/1.0"`
	DirectoryTimeout    time.Duration `env:"ADVISOR_DIRECTORY_TIMEOUT" default:"10s"`
	DefaultLatitude     float64       `env:"ADVISOR_DEFAULT_LAT" default:"20.5937"`
	DefaultLongitude    float64       `env:"ADVISOR_DEFAULT_LON" default:"78.9629"`
}

// WeatherConfig configures the Weather Fetcher.
type WeatherConfig struct {
	BaseURL string        `env:"ADVISOR_WEATHER_URL" default:"https://api.open-meteo.com/v1"`
	Timeout time.Duration `env:"ADVISOR_WEATHER_TIMEOUT" default:"5s"`
}

// RetrievalConfig configures the document-retrieval adapter.
type RetrievalConfig struct {
	Enabled    bool          `env:"ADVISOR_RETRIEVAL_ENABLED" default:"false"`
	SolrURL    string        `env:"ADVISOR_SOLR_URL"`
	Collection string        `env:"ADVISOR_SOLR_COLLECTION" default:"farmer-advisory"`
	Timeout    time.Duration `env:"ADVISOR_RETRIEVAL_TIMEOUT" default:"3s"`
}

// LLMConfig configures the optional, out-of-core prompt generator adapter.
type LLMConfig struct {
	Enabled bool   `env:"ADVISOR_LLM_ENABLED" default:"false"`
	Region  string `env:"ADVISOR_LLM_REGION,AWS_REGION" default:"ap-south-1"`
	ModelID string `env:"ADVISOR_LLM_MODEL" default:"anthropic.claude-3-haiku-20240307-v1:0"`
}

// LoggingConfig configures the ambient structured logger.
type LoggingConfig struct {
	Level string `env:"ADVISOR_LOG_LEVEL,LOG_LEVEL" default:"info"`
}

// ResilienceConfig configures circuit breakers and retry for external calls.
type ResilienceConfig struct {
	CircuitThreshold int           `env:"ADVISOR_CB_THRESHOLD" default:"5"`
	CircuitTimeout   time.Duration `env:"ADVISOR_CB_TIMEOUT" default:"30s"`
	RetryMaxAttempts int           `env:"ADVISOR_RETRY_MAX_ATTEMPTS" default:"3"`
}

// DefaultConfig returns the struct-default layer.
func DefaultConfig() *Config {
	return &Config{
		Port:      8080,
		Namespace: "farmer-advisor",
		Redis:     RedisConfig{Namespace: "learning"},
		RateLimit: RateLimitConfig{MaxPerWindow: 5, WindowSeconds: 3600 * time.Second},
		Location: LocationConfig{
			IndiaPostBaseURL:  "https://api.postalpincode.in",
			GeocoderBaseURL:   "https://nominatim.openstreetmap.org",
			GeocoderUserAgent: "FarmerAdvisor/1.0",
			DirectoryTimeout:  10 * time.Second,
			DefaultLatitude:   20.5937,
			DefaultLongitude:  78.9629,
		},
		Weather:   WeatherConfig{BaseURL: "https://api.open-meteo.com/v1", Timeout: 5 * time.Second},
		Retrieval: RetrievalConfig{Collection: "farmer-advisory", Timeout: 3 * time.Second},
		LLM:       LLMConfig{Region: "ap-south-1", ModelID: "anthropic.claude-3-haiku-20240307-v1:0"},
		Logging:   LoggingConfig{Level: "info"},
		Resilience: ResilienceConfig{
			CircuitThreshold: 5,
			CircuitTimeout:   30 * time.Second,
			RetryMaxAttempts: 3,
		},
		logger: NoOpLogger{},
	}
}

// LoadFromEnv overlays environment variables onto the current values,
// field by field, logging what it picked up. Malformed values are logged
// and skipped rather than aborting startup.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("ADVISOR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		} else {
			c.logger.Warn("invalid ADVISOR_PORT", map[string]interface{}{"value": v})
		}
	}
	if v := os.Getenv("ADVISOR_NAMESPACE"); v != "" {
		c.Namespace = v
	}
	if v := firstNonEmpty("ADVISOR_REDIS_URL", "REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("ADVISOR_REDIS_NAMESPACE"); v != "" {
		c.Redis.Namespace = v
	}
	if v := os.Getenv("ADVISOR_RATE_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.MaxPerWindow = n
		} else {
			c.logger.Warn("invalid ADVISOR_RATE_LIMIT_MAX", map[string]interface{}{"value": v})
		}
	}
	if v := os.Getenv("ADVISOR_RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RateLimit.WindowSeconds = d
		} else {
			c.logger.Warn("invalid ADVISOR_RATE_LIMIT_WINDOW", map[string]interface{}{"value": v})
		}
	}
	if v := os.Getenv("ADVISOR_SOLR_URL"); v != "" {
		c.Retrieval.SolrURL = v
		c.Retrieval.Enabled = true
	}
	if v := firstNonEmpty("ADVISOR_LOG_LEVEL", "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := firstNonEmpty("ADVISOR_LLM_REGION", "AWS_REGION"); v != "" {
		c.LLM.Region = v
	}
	if os.Getenv("ADVISOR_LLM_ENABLED") == "true" {
		c.LLM.Enabled = true
	}

	c.logger.Info("configuration loaded", map[string]interface{}{
		"port":              c.Port,
		"namespace":         c.Namespace,
		"redis_configured":  c.Redis.URL != "",
		"retrieval_enabled": c.Retrieval.Enabled,
		"llm_enabled":       c.LLM.Enabled,
	})
}

func firstNonEmpty(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithLogger attaches the logger used for configuration diagnostics.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.logger = l }
}

// WithPort overrides the HTTP port.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

// WithRedisURL overrides the Learning Store's Redis connection string.
func WithRedisURL(url string) Option {
	return func(c *Config) { c.Redis.URL = url }
}

// WithRateLimit overrides the fixed-window rate limiter's bounds.
func WithRateLimit(maxPerWindow int, window time.Duration) Option {
	return func(c *Config) {
		c.RateLimit.MaxPerWindow = maxPerWindow
		c.RateLimit.WindowSeconds = window
	}
}

// NewConfig builds a Config by layering defaults, environment, then options.
func NewConfig(opts ...Option) *Config {
	c := DefaultConfig()
	c.LoadFromEnv()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
