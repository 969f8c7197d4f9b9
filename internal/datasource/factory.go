package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hippique/internal/config"
)

// SourceType represents the type of data provider
type SourceType string

const (
	// FileSourceType reads a local data directory
	FileSourceType SourceType = "file"
	// HTTPSourceType fetches the same layout from a base URL
	HTTPSourceType SourceType = "http"
)

// Factory creates DataProvider implementations based on configuration
type Factory struct {
	logger logrus.FieldLogger
	config config.DataConfig
}

// NewFactory creates a new data provider factory
func NewFactory(cfg config.DataConfig, logger logrus.FieldLogger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// Create creates the configured data provider
func (f *Factory) Create() (DataProvider, error) {
	switch SourceType(f.config.Source) {
	case FileSourceType:
		if f.config.Dir == "" {
			return nil, fmt.Errorf("data.dir is required for the file source")
		}
		f.logger.WithField("dir", f.config.Dir).Info("Using file data provider")
		return NewFileProvider(f.config.Dir, f.logger), nil

	case HTTPSourceType:
		if f.config.BaseURL == "" {
			return nil, fmt.Errorf("data.base_url is required for the http source")
		}
		httpCfg := DefaultHTTPClientConfig()
		if f.config.TimeoutSeconds > 0 {
			httpCfg.Timeout = f.config.Timeout()
		}
		if f.config.MaxRetries > 0 {
			httpCfg.MaxRetries = f.config.MaxRetries
		}
		if f.config.RateLimit > 0 {
			httpCfg.RateLimit = f.config.RateLimit
		}
		f.logger.WithField("base_url", f.config.BaseURL).Info("Using HTTP data provider")
		return NewHTTPProvider(NewRateLimitedHTTPClient(httpCfg, f.logger), f.config.BaseURL, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", f.config.Source)
	}
}

// ListAvailableSources returns a list of available source types
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{FileSourceType, HTTPSourceType}
}
