// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for exported rankings.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogExportWritten logs a ranking export written to disk.
func (al *AuditLogger) LogExportWritten(runID, category, path string, items int, extractedAt time.Time) {
	al.WithFields(logrus.Fields{
		"run_id":          runID,
		"category":        category,
		"path":            path,
		"items":           items,
		"extraction_date": extractedAt.Unix(),
	}).Info("Ranking export written")
}

// LogExportFailed logs a category that could not be exported.
func (al *AuditLogger) LogExportFailed(runID, category string, err error) {
	al.WithFields(logrus.Fields{
		"run_id":   runID,
		"category": category,
		"error":    err,
	}).Error("Ranking export failed")
}

// LogCacheInvalidated logs an explicit session cache clear.
func (al *AuditLogger) LogCacheInvalidated(categories []string) {
	al.WithFields(logrus.Fields{
		"categories": categories,
	}).Info("Ranked table cache invalidated")
}
