// Package logger provides staking-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StakeLogger provides dedicated logging for stake allocation.
type StakeLogger struct {
	*logrus.Entry
}

// NewStakeLogger creates a new stake logger.
func NewStakeLogger(baseLogger *logrus.Logger) *StakeLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &StakeLogger{
		Entry: baseLogger.WithField("component", "staking"),
	}
}

// LogStateTransition logs a move of the allocator state machine.
func (sl *StakeLogger) LogStateTransition(calculationID, from, to string) {
	sl.WithFields(logrus.Fields{
		"calculation_id": calculationID,
		"from":           from,
		"to":             to,
	}).Debug("Allocator state changed")
}

// LogCalculation logs a completed stake calculation.
func (sl *StakeLogger) LogCalculation(calculationID, strategy string, entrants, iterations int, profitable, exhausted bool, avgNetGain float64) {
	sl.WithFields(logrus.Fields{
		"calculation_id": calculationID,
		"strategy":       strategy,
		"entrants":       entrants,
		"iterations":     iterations,
		"profitable":     profitable,
		"exhausted":      exhausted,
		"avg_net_gain":   avgNetGain,
	}).Info("Stake calculation completed")
}

// LogSearchExhausted logs an EV search that hit its iteration budget.
func (sl *StakeLogger) LogSearchExhausted(calculationID string, budget int) {
	sl.WithFields(logrus.Fields{
		"calculation_id":   calculationID,
		"iteration_budget": budget,
	}).Warn("Stake search stopped at iteration budget, returning best found")
}

// LogValidationFailure logs a rejected stake request.
func (sl *StakeLogger) LogValidationFailure(calculationID string, err error) {
	sl.WithFields(logrus.Fields{
		"calculation_id": calculationID,
		"error":          err,
	}).Warn("Stake request rejected")
}
