// Package config provides configuration management for Forbidden Valley.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Game    GameConfig
	Storage StorageConfig
	Debug   bool
	Env     string
}

// GameConfig represents simulation settings.
type GameConfig struct {
	ScenarioPath string
}

// StorageConfig represents journal and export settings.
type StorageConfig struct {
	DataRoot    string
	JournalPath string
	ExportDir   string
	Export      bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	export, err := parseBoolEnv("VALLEY_EXPORT", false)
	if err != nil {
		return nil, fmt.Errorf("invalid VALLEY_EXPORT: %w", err)
	}

	config := &Config{
		Game: GameConfig{
			ScenarioPath: os.Getenv("VALLEY_SCENARIO"),
		},
		Storage: StorageConfig{
			DataRoot:    getEnvOrDefault("VALLEY_DATA_ROOT", "."),
			JournalPath: os.Getenv("VALLEY_JOURNAL_PATH"),
			ExportDir:   os.Getenv("VALLEY_EXPORT_DIR"),
			Export:      export,
		},
		Debug: os.Getenv("DEBUG") == "true",
		Env:   getEnvOrDefault("VALLEY_ENV", "development"),
	}

	return config, nil
}

// Validate checks that every required field is set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "game":
			switch path[1] {
			case "scenario":
				value = c.Game.ScenarioPath
			}
		case "storage":
			switch path[1] {
			case "dataRoot":
				value = c.Storage.DataRoot
			case "journalPath":
				value = c.Storage.JournalPath
			case "exportDir":
				value = c.Storage.ExportDir
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
