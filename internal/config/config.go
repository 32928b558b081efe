package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration
	TrustedProxies  []string

	// Indicators provider
	DataBackend     string
	ProviderBaseURL string
	ProviderAPIKey  string
	FixturesDir     string

	// Dashboard
	DefaultCountry string

	// Rate limiting
	RateLimitPerMinute int

	// Logging
	LogLevel  string
	LogFormat string
	Env       string
}

func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:  getEnvList("TRUSTED_PROXIES"),

		DataBackend:     getEnv("DATA_BACKEND", "tradingeconomics"),
		ProviderBaseURL: getEnv("PROVIDER_BASE_URL", "https://api.tradingeconomics.com"),
		ProviderAPIKey:  getEnv("PROVIDER_API_KEY", ""),
		FixturesDir:     getEnv("FIXTURES_DIR", "./data"),

		DefaultCountry: getEnv("DEFAULT_COUNTRY", "sweden"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		LogLevel:  getEnv("LOG_LEVEL", ""),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Env:       getEnv("ENV", "development"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"tradingeconomics", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "tradingeconomics" {
		if c.ProviderAPIKey == "" {
			errors = append(errors, "PROVIDER_API_KEY is required when using tradingeconomics backend")
		}
		if parsedURL, err := url.Parse(c.ProviderBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid provider base URL '%s': %v", c.ProviderBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid provider base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		} else if parsedURL.Host == "" {
			errors = append(errors, fmt.Sprintf("invalid provider base URL '%s': missing host", c.ProviderBaseURL))
		}
	}

	if c.DataBackend == "memory" {
		if info, err := os.Stat(c.FixturesDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("fixtures directory does not exist: %s", c.FixturesDir))
		}
	}

	if strings.TrimSpace(c.DefaultCountry) == "" {
		errors = append(errors, "default country cannot be empty")
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	} else if c.RateLimitPerMinute > 10000 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at most 10000 requests per minute", c.RateLimitPerMinute))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	} else if c.ShutdownTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at most 5 minutes", c.ShutdownTimeout))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
