package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hippique/internal/models"
)

const httpProviderName = "http"

// HTTPProvider fetches the same file layout as FileProvider from a base URL,
// e.g. a raw content host serving the data directory.
type HTTPProvider struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	logger     logrus.FieldLogger
}

// NewHTTPProvider creates a provider reading from baseURL.
func NewHTTPProvider(httpClient *RateLimitedHTTPClient, baseURL string, logger logrus.FieldLogger) *HTTPProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.WithField("provider", httpProviderName),
	}
}

// Name returns the name of the provider
func (p *HTTPProvider) Name() string {
	return httpProviderName
}

// LoadCategoryTable fetches the weighted result file, falling back to the
// plain one on 404.
func (p *HTTPProvider) LoadCategoryTable(ctx context.Context, category models.Category) ([]models.SourceRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}

	var lastErr error
	for _, name := range ResultFileNames(category) {
		data, err := p.fetch(ctx, name)
		if err != nil {
			lastErr = err
			if ErrorCode(err) == ErrCodeNotFound {
				continue
			}
			return nil, err
		}
		records, err := DecodeResults(category, data)
		if err != nil {
			return nil, NewDataSourceError(httpProviderName, ErrCodeInvalidData, "failed to parse "+name, err)
		}
		p.logger.WithFields(logrus.Fields{"category": category, "file": name, "records": len(records)}).Debug("Fetched category results")
		return records, nil
	}
	return nil, lastErr
}

// LoadRaceParticipants fetches the race card for date and hippodrome.
func (p *HTTPProvider) LoadRaceParticipants(ctx context.Context, date, hippodrome string) (*models.RaceDay, error) {
	name := RaceCardPath(date, hippodrome)
	data, err := p.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	day, err := DecodeRaceDay(date, hippodrome, data)
	if err != nil {
		return nil, NewDataSourceError(httpProviderName, ErrCodeInvalidData, "failed to parse "+name, err)
	}
	warnSkippedRunners(p.logger, name, day)
	return day, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, name string) ([]byte, error) {
	url := p.baseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(httpProviderName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(httpProviderName, ErrCodeNetworkError, "failed to fetch "+name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(httpProviderName, ErrCodeNotFound, name+" not found", ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(httpProviderName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(httpProviderName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(httpProviderName, ErrCodeNetworkError, "failed to read body", err)
	}
	return data, nil
}
