package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	log := NewLogger("verbose")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log = NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestRankingLoggerTableBuilt(t *testing.T) {
	log, buf := setupTestLogger()
	rankingLogger := NewRankingLogger(log)

	rankingLogger.LogTableBuilt("jockey", 120, 3, false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ranking", logEntry["component"])
	assert.Equal(t, "jockey", logEntry["category"])
	assert.Equal(t, float64(120), logEntry["records"])
	assert.Equal(t, false, logEntry["pre_ranked"])
}

func TestRankingLoggerResolutionMiss(t *testing.T) {
	log, buf := setupTestLogger()
	rankingLogger := NewRankingLogger(log)

	rankingLogger.LogResolutionMiss("trainer", "X. UNKNOWN")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "debug", logEntry["level"])
	assert.Equal(t, "X. UNKNOWN", logEntry["raw_name"])
}

func TestStakeLoggerCalculation(t *testing.T) {
	log, buf := setupTestLogger()
	stakeLogger := NewStakeLogger(log)

	stakeLogger.LogCalculation("calc-1", "ev", 3, 4200, true, false, 12.5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "staking", logEntry["component"])
	assert.Equal(t, "ev", logEntry["strategy"])
	assert.Equal(t, float64(4200), logEntry["iterations"])
	assert.Equal(t, true, logEntry["profitable"])
}

func TestStakeLoggerValidationFailure(t *testing.T) {
	log, buf := setupTestLogger()
	stakeLogger := NewStakeLogger(log)

	stakeLogger.LogValidationFailure("calc-2", errors.New("odds below 1.01"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "odds below 1.01", logEntry["error"])
}

func TestAuditLoggerExportWritten(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogExportWritten(
		"run-1",
		"horse",
		"/tmp/ranking-horse.json",
		250,
		time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, float64(250), logEntry["items"])
}

func TestNilBaseLoggerIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRankingLogger(nil).LogResolutionMiss("owner", "NOBODY")
		NewStakeLogger(nil).LogSearchExhausted("calc-3", 10)
		NewAuditLogger(nil).LogCacheInvalidated([]string{"horse"})
	})
}
