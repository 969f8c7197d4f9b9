package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. HIPPIQUE_APP_LOG_LEVEL.
const EnvPrefix = "HIPPIQUE"

// DefaultPath is used when no config path is given.
const DefaultPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hippique")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("data.source", "file")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.timeout_seconds", 30)
	v.SetDefault("data.max_retries", 3)
	v.SetDefault("data.rate_limit", 5.0)

	v.SetDefault("scoring.category_weights", map[string]float64{
		"horse":   0.55,
		"jockey":  0.15,
		"trainer": 0.12,
		"breeder": 0.10,
		"owner":   0.08,
	})
	v.SetDefault("scoring.unresolved_score", 30.0)
	v.SetDefault("scoring.composite.wins", 0.5)
	v.SetDefault("scoring.composite.win_rate", 0.3)
	v.SetDefault("scoring.composite.place_rate", 0.2)
	v.SetDefault("scoring.tie_epsilon", 0.001)

	v.SetDefault("corde.enabled", true)
	v.SetDefault("weight.enabled", false)

	v.SetDefault("staking.strategy", "dutch")
	v.SetDefault("staking.total_budget", 100.0)
	v.SetDefault("staking.max_per_entrant", 100.0)
	v.SetDefault("staking.min_stake", 1.0)
	v.SetDefault("staking.subset_sizes", []int{2, 3, 4, 5})
	v.SetDefault("staking.iteration_budget", 100000)

	v.SetDefault("cache.discovered_ttl_seconds", 0)

	v.SetDefault("export.output_dir", "data/rankings")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
