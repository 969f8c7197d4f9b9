package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hippique/internal/models"
)

const fileProviderName = "file"

// FileProvider reads result and race card files from a local directory laid
// out as:
//
//	<dir>/<source key>_ponderated_latest.json
//	<dir>/<source key>.json
//	<dir>/courses/<date>_<hippodrome>.json
type FileProvider struct {
	dir    string
	logger logrus.FieldLogger
}

// NewFileProvider creates a provider rooted at dir.
func NewFileProvider(dir string, logger logrus.FieldLogger) *FileProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &FileProvider{dir: dir, logger: logger.WithField("provider", fileProviderName)}
}

// Name returns the name of the provider
func (p *FileProvider) Name() string {
	return fileProviderName
}

// LoadCategoryTable reads the weighted result file when present, else the
// plain one.
func (p *FileProvider) LoadCategoryTable(ctx context.Context, category models.Category) ([]models.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}

	var lastErr error
	for _, name := range ResultFileNames(category) {
		data, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			lastErr = err
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, NewDataSourceError(fileProviderName, ErrCodeUnknown, "failed to read "+name, err)
		}
		records, err := DecodeResults(category, data)
		if err != nil {
			return nil, NewDataSourceError(fileProviderName, ErrCodeInvalidData, "failed to parse "+name, err)
		}
		p.logger.WithFields(logrus.Fields{"category": category, "file": name, "records": len(records)}).Debug("Loaded category results")
		return records, nil
	}
	return nil, NewDataSourceError(fileProviderName, ErrCodeNotFound, "no result file for "+category.SourceKey(), lastErr)
}

// LoadRaceParticipants reads the race card for date and hippodrome.
func (p *FileProvider) LoadRaceParticipants(ctx context.Context, date, hippodrome string) (*models.RaceDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := RaceCardPath(date, hippodrome)
	data, err := os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(name)))
	if err != nil {
		code := ErrCodeUnknown
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return nil, NewDataSourceError(fileProviderName, code, "failed to read "+name, err)
	}
	day, err := DecodeRaceDay(date, hippodrome, data)
	if err != nil {
		return nil, NewDataSourceError(fileProviderName, ErrCodeInvalidData, "failed to parse "+name, err)
	}
	warnSkippedRunners(p.logger, name, day)
	return day, nil
}

// ResultFileNames lists the result files tried for a category, in order.
func ResultFileNames(category models.Category) []string {
	key := category.SourceKey()
	return []string{key + "_ponderated_latest.json", key + ".json"}
}

// RaceCardPath is the slash-separated path of a race card relative to the
// data root.
func RaceCardPath(date, hippodrome string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(hippodrome)), " ", "_")
	return "courses/" + date + "_" + slug + ".json"
}
