package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		ShutdownTimeout:    10 * time.Second,
		DataBackend:        "tradingeconomics",
		ProviderBaseURL:    "https://api.tradingeconomics.com",
		ProviderAPIKey:     "guest:guest",
		DefaultCountry:     "sweden",
		RateLimitPerMinute: 60,
		LogFormat:          "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid tradingeconomics backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite': must be one of [tradingeconomics memory]",
		},
		{
			name:        "tradingeconomics backend missing API key",
			mutate:      func(c *Config) { c.ProviderAPIKey = "" },
			wantErr:     true,
			errorString: "PROVIDER_API_KEY is required when using tradingeconomics backend",
		},
		{
			name:        "invalid provider URL scheme",
			mutate:      func(c *Config) { c.ProviderBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "invalid provider base URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "provider URL without host",
			mutate:      func(c *Config) { c.ProviderBaseURL = "https://" },
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name: "memory backend ignores provider settings",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.ProviderAPIKey = ""
				c.FixturesDir = "."
			},
			wantErr: false,
		},
		{
			name: "memory backend missing fixtures",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.FixturesDir = "/non/existent/dir"
			},
			wantErr:     true,
			errorString: "fixtures directory does not exist: /non/existent/dir",
		},
		{
			name:        "empty default country",
			mutate:      func(c *Config) { c.DefaultCountry = "  " },
			wantErr:     true,
			errorString: "default country cannot be empty",
		},
		{
			name:        "rate limit too small",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1 request per minute",
		},
		{
			name:        "rate limit too large",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 20000 },
			wantErr:     true,
			errorString: "invalid rate limit 20000: must be at most 10000 requests per minute",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 500ms: must be at least 1 second",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCombinesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.ProviderAPIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:\n- ") {
		t.Fatalf("unexpected prefix: %q", msg)
	}
	if strings.Count(msg, "\n- ") != 2 {
		t.Fatalf("expected two errors, got %q", msg)
	}
}

func TestConfig_ValidateWithFixturesDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "sweden.json")
	if err := os.WriteFile(file, []byte(`[]`), 0644); err != nil {
		t.Fatalf("Failed to create fixture: %v", err)
	}

	cfg := validConfig()
	cfg.DataBackend = "memory"

	cfg.FixturesDir = tmpDir
	if err := cfg.Validate(); err != nil {
		t.Errorf("Config.Validate() with directory error = %v", err)
	}

	cfg.FixturesDir = file
	if err := cfg.Validate(); err == nil {
		t.Error("Config.Validate() should reject a file as fixtures directory")
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "DATA_BACKEND", "PROVIDER_BASE_URL", "PROVIDER_API_KEY",
		"FIXTURES_DIR", "DEFAULT_COUNTRY", "RATE_LIMIT_PER_MINUTE",
		"SHUTDOWN_TIMEOUT", "TRUSTED_PROXIES", "LOG_FORMAT", "ENV",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "tradingeconomics" {
			t.Errorf("Load() DataBackend = %v, want tradingeconomics", cfg.DataBackend)
		}
		if cfg.ProviderBaseURL != "https://api.tradingeconomics.com" {
			t.Errorf("Load() ProviderBaseURL = %v", cfg.ProviderBaseURL)
		}
		if cfg.FixturesDir != "./data" {
			t.Errorf("Load() FixturesDir = %v, want ./data", cfg.FixturesDir)
		}
		if cfg.DefaultCountry != "sweden" {
			t.Errorf("Load() DefaultCountry = %v, want sweden", cfg.DefaultCountry)
		}
		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 60", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
		}
		if cfg.TrustedProxies != nil {
			t.Errorf("Load() TrustedProxies = %v, want nil", cfg.TrustedProxies)
		}
		if cfg.LogFormat != "text" || cfg.Env != "development" {
			t.Errorf("Load() LogFormat = %v, Env = %v", cfg.LogFormat, cfg.Env)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("PROVIDER_API_KEY", "secret")
		t.Setenv("DEFAULT_COUNTRY", "norway")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
		t.Setenv("SHUTDOWN_TIMEOUT", "30s")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16,")
		t.Setenv("ENV", "production")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.ProviderAPIKey != "secret" {
			t.Errorf("Load() ProviderAPIKey not read")
		}
		if cfg.DefaultCountry != "norway" {
			t.Errorf("Load() DefaultCountry = %v, want norway", cfg.DefaultCountry)
		}
		if cfg.RateLimitPerMinute != 120 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 120", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
		}
		if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "192.168.0.0/16" {
			t.Errorf("Load() TrustedProxies = %v", cfg.TrustedProxies)
		}
		if !cfg.IsProduction() {
			t.Error("Load() IsProduction = false, want true")
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "invalid")
		t.Setenv("SHUTDOWN_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.RateLimitPerMinute != 60 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 60 (default for invalid input)", cfg.RateLimitPerMinute)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s (default for invalid input)", cfg.ShutdownTimeout)
		}
	})
}
