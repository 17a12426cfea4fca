package config

import (
	"os"
	"strconv"
	"time"

	"edascope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server Server
	Upload Upload
	AI     AI
	Ops    Ops
}

// Server holds web server settings
type Server struct {
	Port       string
	GinMode    string
	SessionTTL time.Duration
}

// Upload holds file ingestion limits
type Upload struct {
	MaxBytes int64
}

// AI holds the insight client settings. APIKey may be empty: statistics and
// charts work without it, and insight requests fail with a config error.
type AI struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Ops holds the sidecar listener settings (health + pprof)
type Ops struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: Server{
			Port:       getEnvOrDefault("PORT", "8080"),
			GinMode:    getEnvOrDefault("GIN_MODE", "debug"),
			SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		},
		Upload: Upload{
			MaxBytes: int64(getEnvIntOrDefault("UPLOAD_LIMIT_MB", 50)) * 1024 * 1024,
		},
		AI: AI{
			APIKey:  os.Getenv("EDA_API_KEY"),
			BaseURL: getEnvOrDefault("EDA_API_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			Timeout: getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Ops: Ops{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("upload limit must be positive")
	}
	if config.AI.BaseURL == "" {
		return errors.ConfigInvalid("AI base URL is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
