// Package export writes ranked category tables as JSON files.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/models"
)

// ErrEmptyTable is returned for a category with nothing to export. Existing
// files are left untouched.
var ErrEmptyTable = errors.New("ranked table is empty")

// TableSource provides ranked tables, typically a service.Session.
type TableSource interface {
	GetRankedTable(ctx context.Context, category models.Category) (*models.RankedCategoryTable, error)
}

// File is the on-disk export format.
type File struct {
	Metadata Metadata `json:"metadata"`
	Rangs    []Rang   `json:"rangs"`
}

// Metadata describes one exported table.
type Metadata struct {
	Category       string    `json:"category"`
	ExtractionDate time.Time `json:"extraction_date"`
	Description    string    `json:"description"`
	NombreItems    int       `json:"nombre_items"`
	KPI            KPI       `json:"kpi"`
}

// KPI summarises the table that was exported.
type KPI struct {
	Total      int `json:"total"`
	Duplicates int `json:"duplicates"`
}

// Rang is one exported actor.
type Rang struct {
	Nom  string `json:"nom"`
	Rang int    `json:"rang"`
}

// RunResult reports one export run.
type RunResult struct {
	RunID  uuid.UUID
	Files  map[models.Category]string
	Failed map[models.Category]error
}

// Exporter writes ranking-<key>.json files into an output directory.
type Exporter struct {
	source    TableSource
	outputDir string
	audit     *logger.AuditLogger
	now       func() time.Time
}

// NewExporter creates an Exporter.
func NewExporter(source TableSource, outputDir string, audit *logger.AuditLogger) *Exporter {
	if audit == nil {
		audit = logger.NewAuditLogger(nil)
	}
	return &Exporter{
		source:    source,
		outputDir: outputDir,
		audit:     audit,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// FileName returns the export file name for a category.
func FileName(category models.Category) string {
	return "ranking-" + category.SourceKey() + ".json"
}

// BuildFile converts a ranked table into the export format.
func BuildFile(table *models.RankedCategoryTable, extractedAt time.Time) File {
	key := table.Category().SourceKey()
	rangs := lo.Map(table.Records(), func(r models.ActorRecord, _ int) Rang {
		return Rang{Nom: r.Name, Rang: r.Rank}
	})
	return File{
		Metadata: Metadata{
			Category:       key,
			ExtractionDate: extractedAt,
			Description:    fmt.Sprintf("Classement pondéré %s pour score prédictif", key),
			NombreItems:    len(rangs),
			KPI:            KPI{Total: len(rangs), Duplicates: table.Duplicates()},
		},
		Rangs: rangs,
	}
}

// ExportAll exports every category in categories. A failing category does
// not stop the others; the returned error joins every failure.
func (e *Exporter) ExportAll(ctx context.Context, categories []models.Category) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		RunID:  uuid.New(),
		Files:  make(map[models.Category]string, len(categories)),
		Failed: make(map[models.Category]error),
	}
	defer func() {
		metrics.RecordExportDuration(time.Since(start).Seconds())
	}()

	var errs []error
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path, err := e.ExportCategory(ctx, result.RunID, category)
		if err != nil {
			result.Failed[category] = err
			errs = append(errs, fmt.Errorf("%s: %w", category, err))
			continue
		}
		result.Files[category] = path
	}
	return result, errors.Join(errs...)
}

// ExportCategory writes the file for one category and returns its path.
func (e *Exporter) ExportCategory(ctx context.Context, runID uuid.UUID, category models.Category) (string, error) {
	table, err := e.source.GetRankedTable(ctx, category)
	if err != nil {
		return "", e.fail(runID, category, "failed", err)
	}
	if table.Len() == 0 {
		return "", e.fail(runID, category, "skipped", ErrEmptyTable)
	}

	extractedAt := e.now()
	file := BuildFile(table, extractedAt)
	path := filepath.Join(e.outputDir, FileName(category))
	if err := writeJSON(path, file); err != nil {
		return "", e.fail(runID, category, "failed", err)
	}

	e.audit.LogExportWritten(runID.String(), category.String(), path, file.Metadata.NombreItems, extractedAt)
	metrics.RecordExport(category.String(), "written")
	return path, nil
}

func (e *Exporter) fail(runID uuid.UUID, category models.Category, outcome string, err error) error {
	e.audit.LogExportFailed(runID.String(), category.String(), err)
	metrics.RecordExport(category.String(), outcome)
	return err
}

// writeJSON replaces path atomically so readers never see a partial file.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ranking-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set export permissions: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
