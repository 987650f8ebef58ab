package config

import (
	"errors"
	"os"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds batch settings, populated from environment variables. A .env file in
// the working directory is loaded first when present; real environment values win.
type Config struct {
	InputDir  string
	OutputDir string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		InputDir:  sharedcfg.EnvOrDefault("INPUT_DIR", "2_filtered_data"),
		OutputDir: sharedcfg.EnvOrDefault("OUTPUT_DIR", "3_postprocessed_data"),
		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
	}

	if strings.TrimSpace(cfg.InputDir) == "" {
		return nil, errors.New("INPUT_DIR is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.New("LOG_FORMAT must be json or text")
	}
	return cfg, nil
}

// loadDotEnv loads path if it exists. godotenv.Load never overrides variables that
// are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.New("invalid .env file: " + err.Error())
	}
	return nil
}
