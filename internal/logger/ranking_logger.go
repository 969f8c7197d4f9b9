// Package logger provides ranking-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// RankingLogger provides dedicated logging for table building, name
// resolution and participant scoring.
type RankingLogger struct {
	*logrus.Entry
}

// NewRankingLogger creates a new ranking logger.
func NewRankingLogger(baseLogger *logrus.Logger) *RankingLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &RankingLogger{
		Entry: baseLogger.WithField("component", "ranking"),
	}
}

// LogTableBuilt logs the construction of a ranked category table.
func (rl *RankingLogger) LogTableBuilt(category string, records, duplicates int, preRanked bool) {
	rl.WithFields(logrus.Fields{
		"category":   category,
		"records":    records,
		"duplicates": duplicates,
		"pre_ranked": preRanked,
	}).Info("Ranked table built")
}

// LogTableUnavailable logs a category that could not be loaded.
func (rl *RankingLogger) LogTableUnavailable(category string, err error) {
	rl.WithFields(logrus.Fields{
		"category": category,
		"error":    err,
	}).Warn("Category data unavailable, using empty table")
}

// LogResolution logs a successful name resolution.
func (rl *RankingLogger) LogResolution(category, rawName, matchedName, method string, rank int) {
	rl.WithFields(logrus.Fields{
		"category":     category,
		"raw_name":     rawName,
		"matched_name": matchedName,
		"method":       method,
		"rank":         rank,
	}).Debug("Actor resolved")
}

// LogResolutionMiss logs a name that matched nothing in its table.
func (rl *RankingLogger) LogResolutionMiss(category, rawName string) {
	rl.WithFields(logrus.Fields{
		"category": category,
		"raw_name": rawName,
	}).Debug("Actor not found in ranking")
}

// LogCordeUnparsed flags a participant whose post position could not be read.
func (rl *RankingLogger) LogCordeUnparsed(horseName, rawPost string) {
	rl.WithFields(logrus.Fields{
		"horse_name": horseName,
		"raw_post":   rawPost,
	}).Debug("Post position missing or unparseable")
}

// LogParticipantScored logs the final score of a participant.
func (rl *RankingLogger) LogParticipantScored(horseName string, total float64, unresolved int) {
	rl.WithFields(logrus.Fields{
		"horse_name": horseName,
		"total":      total,
		"unresolved": unresolved,
	}).Debug("Participant scored")
}
