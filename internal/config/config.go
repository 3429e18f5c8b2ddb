package config

import (
	"os"
	"strconv"

	"datasheet/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	// LogoFile is resolved at render time; a missing or unreadable logo
	// degrades the export instead of failing it.
	LogoFile string
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxSizeMB int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			LogoFile: getEnvOrDefault("LOGO_FILE", "logo.png"),
		},
		Upload: UploadConfig{
			MaxSizeMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
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
	if config.Upload.MaxSizeMB <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
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
