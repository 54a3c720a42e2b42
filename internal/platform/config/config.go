package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	APIBaseURL         string
	Environment        string
	CacheFreshFor      time.Duration
	CacheRetainFor     time.Duration
	WriteRetryAttempts int
	ReadRetryAttempts  int
	MetricsEnabled     bool
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:6202"),
		Environment:        getEnv("APP_ENV", "development"),
		CacheFreshFor:      getEnvDuration("CACHE_FRESH_FOR", 5*time.Minute),
		CacheRetainFor:     getEnvDuration("CACHE_RETAIN_FOR", 30*time.Minute),
		WriteRetryAttempts: getEnvInt("WRITE_RETRY_ATTEMPTS", 5),
		ReadRetryAttempts:  getEnvInt("READ_RETRY_ATTEMPTS", 3),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL")
	}
	if c.CacheFreshFor <= 0 || c.CacheRetainFor <= 0 {
		return fmt.Errorf("cache windows must be positive")
	}
	if c.CacheRetainFor < c.CacheFreshFor {
		return fmt.Errorf("CACHE_RETAIN_FOR must not be shorter than CACHE_FRESH_FOR")
	}
	if c.WriteRetryAttempts < 1 || c.ReadRetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	return nil
}
