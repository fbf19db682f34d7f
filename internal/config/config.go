package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "https://apis.openapi.sk.com"
	DefaultPort           = "8080"
	DefaultAppEnv         = "development"
	DefaultRequestTimeout = 10 * time.Second

	// Layout the route prediction endpoint expects for predictionTime.
	PredictionTimeLayout = "2006-01-02T15:04:05-0700"
)

// ConfigError reports a missing or invalid startup setting.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	APIKey         string
	BaseURL        string
	Port           string
	AppEnv         string
	RequestTimeout time.Duration

	// Fixed departure time for route prediction. Nil means "now" at request time.
	PredictionTime *time.Time
}

// Load reads configuration from environment variables.
// The caller is expected to have loaded any .env file beforehand.
func Load() (*Config, error) {
	return loadFrom(os.Getenv)
}

func loadFrom(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	apiKey := strings.TrimSpace(getenv("TMAP_API_KEY"))
	if apiKey == "" {
		return nil, &ConfigError{Key: "TMAP_API_KEY", Reason: "is required"}
	}

	cfg := &Config{
		APIKey:         apiKey,
		BaseURL:        strings.TrimRight(get("TMAP_BASE_URL", DefaultBaseURL), "/"),
		Port:           get("PORT", DefaultPort),
		AppEnv:         get("APP_ENV", DefaultAppEnv),
		RequestTimeout: DefaultRequestTimeout,
	}

	if raw := get("TMAP_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, &ConfigError{Key: "TMAP_TIMEOUT", Reason: fmt.Sprintf("must be a positive duration, got %q", raw)}
		}
		cfg.RequestTimeout = d
	}

	if raw := get("TMAP_PREDICTION_TIME", ""); raw != "" {
		t, err := ParsePredictionTime(raw)
		if err != nil {
			return nil, &ConfigError{Key: "TMAP_PREDICTION_TIME", Reason: err.Error()}
		}
		cfg.PredictionTime = &t
	}

	return cfg, nil
}

// ParsePredictionTime accepts RFC 3339 or the provider's own layout.
func ParsePredictionTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, PredictionTimeLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", raw)
}

// Get returns the environment value for key, or fallback when it is unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
