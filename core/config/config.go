// Package config loads the stocklens.yaml configuration file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stocklens/stocklens/core/engine"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
)

var log = logging.New("config")

// Environment variable pattern: {{ env.VARIABLE_NAME }}
var envVarPattern = regexp.MustCompile(`\{\{\s*env\.(\w+)\s*\}\}`)

// StoreConfig selects the backing database
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres mysql"`
	DSN    string `yaml:"dsn"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// GeminiConfig enables the optional LLM translator
type GeminiConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// Config is the root of stocklens.yaml
type Config struct {
	Store      StoreConfig        `yaml:"store" validate:"required"`
	Server     ServerConfig       `yaml:"server"`
	Gemini     GeminiConfig       `yaml:"gemini"`
	Heuristics *engine.Heuristics `yaml:"heuristics"`
	LogLevel   string             `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is present:
// the bundled SQLite database on port 8080.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Driver: "sqlite", DSN: "data/wms_database.db"},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads and validates a configuration file. A missing path falls
// back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "stocklens.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("No config file at %s, using defaults", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, substitutes environment variables, applies defaults
// and validates the configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var err error
	if cfg.Store.DSN, err = substituteEnvVars(cfg.Store.DSN); err != nil {
		return nil, err
	}
	if cfg.Gemini.APIKey, err = substituteEnvVars(cfg.Gemini.APIKey); err != nil {
		return nil, err
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	switch cfg.LogLevel {
	case "debug":
		logging.SetLogLevel(logging.LogLevelDebug)
	case "info":
		logging.SetLogLevel(logging.LogLevelInfo)
	case "warn":
		logging.SetLogLevel(logging.LogLevelWarn)
	case "error":
		logging.SetLogLevel(logging.LogLevelError)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// substituteEnvVars replaces {{ env.VARIABLE_NAME }} placeholders with
// environment variable values
func substituteEnvVars(value string) (string, error) {
	result := value
	for _, match := range envVarPattern.FindAllStringSubmatch(value, -1) {
		envValue, exists := os.LookupEnv(match[1])
		if !exists {
			return "", fmt.Errorf("environment variable '%s' not found", match[1])
		}
		result = strings.ReplaceAll(result, match[0], envValue)
	}
	return result, nil
}
