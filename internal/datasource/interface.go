package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/hippique/internal/models"
)

// DataProvider loads raw ranking results and race cards from a backing
// store. Implementations return records already mapped to the internal
// shape; callers never look at source field names.
type DataProvider interface {
	// LoadCategoryTable returns the raw or pre-ranked result list for a category
	LoadCategoryTable(ctx context.Context, category models.Category) ([]models.SourceRecord, error)

	// LoadRaceParticipants returns the courses run at hippodrome on date (YYYY-MM-DD)
	LoadRaceParticipants(ctx context.Context, date, hippodrome string) (*models.RaceDay, error)

	// Name returns the name of the provider
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Provider name
	Code    string // Error code (e.g., "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error and models.ErrDataUnavailable to
// errors.Is.
func (e DataSourceError) Unwrap() []error {
	if e.Err != nil {
		return []error{models.ErrDataUnavailable, e.Err}
	}
	return []error{models.ErrDataUnavailable}
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeUnknown           = "unknown"
)

// Error constructors
var (
	ErrNotFound    = errors.New("data not found")
	ErrInvalidData = errors.New("invalid data format")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the code of a DataSourceError in err's chain, or
// ErrCodeUnknown.
func ErrorCode(err error) string {
	var dse DataSourceError
	if errors.As(err, &dse) {
		return dse.Code
	}
	return ErrCodeUnknown
}
