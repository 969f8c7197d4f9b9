package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/yourusername/hippique/internal/models"
)

const weightSumTolerance = 0.001

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	mustRegister(v, "environment", validateEnvironment)
	mustRegister(v, "loglevel", validateLogLevel)
	mustRegister(v, "category", validateCategory)
	mustRegister(v, "strategy", validateStrategy)
	mustRegister(v, "schedule", validateSchedule)

	return &CustomValidator{validator: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	_, err := models.ParseCategory(fl.Field().String())
	return err == nil
}

func validateStrategy(fl validator.FieldLevel) bool {
	_, err := models.ParseStrategy(fl.Field().String())
	return err == nil
}

// validateSchedule accepts standard five-field cron specs and descriptors
// such as "@daily".
func validateSchedule(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	var sum float64
	for _, w := range cfg.Scoring.CategoryWeights {
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("scoring.category_weights must sum to 1, got %.4f", sum)
	}

	c := cfg.Scoring.Composite
	if composite := c.Wins + c.WinRate + c.PlaceRate; math.Abs(composite-1) > weightSumTolerance {
		return fmt.Errorf("scoring.composite weights must sum to 1, got %.4f", composite)
	}

	if cfg.Staking.MaxPerEntrant > cfg.Staking.TotalBudget {
		return fmt.Errorf("staking.max_per_entrant cannot exceed staking.total_budget")
	}

	if cfg.Staking.MinStake > cfg.Staking.MaxPerEntrant {
		return fmt.Errorf("staking.min_stake cannot exceed staking.max_per_entrant")
	}

	for name, table := range cfg.Corde.Hippodromes {
		for post := range table {
			if n, err := parsePost(post); err != nil || n < 1 {
				return fmt.Errorf("corde.hippodromes.%s: invalid post position %q", name, post)
			}
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			fmt.Fprintf(&errMsg, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&errMsg, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&errMsg, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "category":
			fmt.Fprintf(&errMsg, "- Field '%s' has unknown category '%v'\n", field, value)
		case "strategy":
			fmt.Fprintf(&errMsg, "- Field '%s' must be one of: dutch, ev, mid_range\n", field)
		case "schedule":
			fmt.Fprintf(&errMsg, "- Field '%s' is not a valid cron schedule: '%v'\n", field, value)
		case "oneof":
			fmt.Fprintf(&errMsg, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&errMsg, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg.String())
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		if cfg.App.LogLevel == "debug" {
			return fmt.Errorf("production environment should not log at debug level")
		}
		if cfg.Data.Source == "http" && !strings.HasPrefix(cfg.Data.BaseURL, "https://") {
			return fmt.Errorf("production environment requires an https data.base_url")
		}
	}
	return nil
}
