// Package config provides configuration management for the Pitch Predictor application.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	rules := map[string]validator.Func{
		"environment":   validateEnvironment,
		"loglevel":      validateLogLevel,
		"datasetsource": validateDatasetSource,
		"cronspec":      validateCronSpec,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateDatasetSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "file", "http", "postgres":
		return true
	default:
		return false
	}
}

func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Dataset.Source {
	case "file":
		if cfg.Dataset.Path == "" {
			return fmt.Errorf("dataset source 'file' requires dataset.path")
		}
	case "http":
		if cfg.Dataset.URL == "" {
			return fmt.Errorf("dataset source 'http' requires dataset.url")
		}
	case "postgres":
		if cfg.Dataset.Table == "" {
			return fmt.Errorf("dataset source 'postgres' requires dataset.table")
		}
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("dataset source 'postgres' requires database host, name and user")
		}
	}

	if cfg.Dataset.ReloadEnabled && cfg.Dataset.ReloadCron == "" {
		return fmt.Errorf("dataset.reload_enabled requires dataset.reload_cron")
	}

	if cfg.Prediction.CapMin >= cfg.Prediction.CapMax {
		return fmt.Errorf("prediction cap_min must be below cap_max")
	}

	if cfg.Prediction.Lookback < cfg.Prediction.MinMatches {
		return fmt.Errorf("prediction lookback cannot be smaller than min_matches")
	}

	if cfg.IsProduction() && cfg.Dataset.Source == "postgres" && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max", "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "datasetsource":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: file, http, postgres\n", field)
		case "cronspec":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid cron expression, got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
