package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"demoqual/internal/analysis/quality"
	"demoqual/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis quality.Params `yaml:"analysis"`
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	LogLevel string         `yaml:"log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
}

// DataConfig points at the input table. An empty TableFile selects the
// built-in reference table.
type DataConfig struct {
	TableFile string `yaml:"table_file"`
	Sheet     string `yaml:"sheet"`
}

var validate = validator.New()

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Analysis: quality.DefaultParams(),
		Server:   ServerConfig{Port: "8080"},
		Data:     DataConfig{Sheet: "Sheet1"},
		LogLevel: "INFO",
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, then environment variables, and validates the result
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err, "failed to parse config file")
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	a := &cfg.Analysis
	a.WhippleMinAge = getEnvFloatOrDefault("WHIPPLE_MIN_AGE", a.WhippleMinAge)
	a.WhippleMaxAge = getEnvFloatOrDefault("WHIPPLE_MAX_AGE", a.WhippleMaxAge)
	a.Thresholds.WhippleGood = getEnvFloatOrDefault("WHIPPLE_GOOD", a.Thresholds.WhippleGood)
	a.Thresholds.MyersGood = getEnvFloatOrDefault("MYERS_GOOD", a.Thresholds.MyersGood)
	a.Thresholds.BachiGood = getEnvFloatOrDefault("BACHI_GOOD", a.Thresholds.BachiGood)
	a.Thresholds.BenfordAlpha = getEnvFloatOrDefault("BENFORD_ALPHA", a.Thresholds.BenfordAlpha)
	a.SmoothingAlpha = getEnvFloatOrDefault("SMOOTHING_ALPHA", a.SmoothingAlpha)
	a.PyramidWidth = getEnvIntOrDefault("PYRAMID_WIDTH", a.PyramidWidth)
	a.PyramidMaxAge = getEnvIntOrDefault("PYRAMID_MAX_AGE", a.PyramidMaxAge)
	a.RatioWindow = getEnvIntOrDefault("RATIO_WINDOW", a.RatioWindow)

	cfg.Server.Port = getEnvOrDefault("PORT", cfg.Server.Port)
	cfg.Data.TableFile = getEnvOrDefault("TABLE_FILE", cfg.Data.TableFile)
	cfg.Data.Sheet = getEnvOrDefault("TABLE_SHEET", cfg.Data.Sheet)
	cfg.LogLevel = strings.ToUpper(getEnvOrDefault("LOG_LEVEL", cfg.LogLevel))
}

// Validate checks every field against its bounds
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return describe(err)
	}
	return ValidateParams(cfg.Analysis)
}

// ValidateParams checks analysis parameters against the adjustable bounds
func ValidateParams(p quality.Params) error {
	if err := validate.Struct(p); err != nil {
		return describe(err)
	}
	if p.WhippleMinAge > p.WhippleMaxAge {
		return errors.ConfigInvalid(fmt.Sprintf("whipple_min_age %v exceeds whipple_max_age %v", p.WhippleMinAge, p.WhippleMaxAge))
	}
	return nil
}

// describe flattens validator output into one CONFIG_INVALID error
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.WithCode(errors.CodeConfigInvalid, err, "invalid configuration")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return errors.ConfigInvalid(strings.Join(parts, "; "))
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
