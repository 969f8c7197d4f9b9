// Package config provides configuration management for the hippique application.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
	Corde   CordeConfig   `mapstructure:"corde"`
	Weight  WeightConfig  `mapstructure:"weight"`
	Staking StakingConfig `mapstructure:"staking" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Export  ExportConfig  `mapstructure:"export" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig selects and tunes the data provider
type DataConfig struct {
	Source         string  `mapstructure:"source" validate:"required,oneof=file http"`
	Dir            string  `mapstructure:"dir" validate:"required_if=Source file"`
	BaseURL        string  `mapstructure:"base_url" validate:"required_if=Source http,omitempty,url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// ScoringConfig represents ranking and participant score configuration
type ScoringConfig struct {
	CategoryWeights map[string]float64 `mapstructure:"category_weights" validate:"required,min=1,dive,keys,category,endkeys,gte=0,lte=1"`
	UnresolvedScore float64            `mapstructure:"unresolved_score" validate:"gte=0,lte=100"`
	Composite       CompositeConfig    `mapstructure:"composite" validate:"required"`
	TieEpsilon      float64            `mapstructure:"tie_epsilon" validate:"gte=0,lt=1"`
}

// CompositeConfig holds the composite scorer weights
type CompositeConfig struct {
	Wins      float64 `mapstructure:"wins" validate:"gte=0,lte=1"`
	WinRate   float64 `mapstructure:"win_rate" validate:"gte=0,lte=1"`
	PlaceRate float64 `mapstructure:"place_rate" validate:"gte=0,lte=1"`
}

// CordeConfig represents post-position adjustment configuration. Empty
// tables fall back to the built-in ones.
type CordeConfig struct {
	Enabled     bool                          `mapstructure:"enabled"`
	Impact      map[string]float64            `mapstructure:"impact" validate:"omitempty,dive,keys,oneof=sprint mile middle staying,endkeys,gte=0"`
	Hippodromes map[string]map[string]float64 `mapstructure:"hippodromes"`
}

// WeightConfig toggles the carried-weight adjustment
type WeightConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StakingConfig represents stake allocator defaults
type StakingConfig struct {
	Strategy        string  `mapstructure:"strategy" validate:"required,strategy"`
	TotalBudget     float64 `mapstructure:"total_budget" validate:"required,gt=0"`
	MaxPerEntrant   float64 `mapstructure:"max_per_entrant" validate:"required,gt=0"`
	MinStake        float64 `mapstructure:"min_stake" validate:"gte=0"`
	ExcludeLow      int     `mapstructure:"exclude_low" validate:"gte=0"`
	ExcludeHigh     int     `mapstructure:"exclude_high" validate:"gte=0"`
	SubsetSizes     []int   `mapstructure:"subset_sizes" validate:"dive,gte=2"`
	IterationBudget int     `mapstructure:"iteration_budget" validate:"gte=0"`
}

// CacheConfig represents name-match cache configuration
type CacheConfig struct {
	DiscoveredTTLSeconds int `mapstructure:"discovered_ttl_seconds" validate:"gte=0"`
}

// ExportConfig represents ranked table export configuration
type ExportConfig struct {
	OutputDir  string   `mapstructure:"output_dir" validate:"required"`
	Schedule   string   `mapstructure:"schedule" validate:"omitempty,schedule"`
	Categories []string `mapstructure:"categories" validate:"dive,category"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Timeout returns the HTTP timeout for the data provider
func (d DataConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// DiscoveredTTL returns how long learned name matches are kept; zero keeps
// them for the session.
func (c CacheConfig) DiscoveredTTL() time.Duration {
	return time.Duration(c.DiscoveredTTLSeconds) * time.Second
}
