// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionAuditLogger records every prediction with enough context to
// reconstruct why the engine reported the probabilities it did.
type PredictionAuditLogger struct {
	*logrus.Entry
}

// NewPredictionAuditLogger creates a new prediction audit logger.
func NewPredictionAuditLogger(baseLogger *logrus.Logger) *PredictionAuditLogger {
	return &PredictionAuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPrediction logs one computed prediction, including the effective
// sample sizes after the fallback policy ran and the head-to-head totals
// they were derived from.
func (al *PredictionAuditLogger) LogPrediction(
	predictionID, team1, team2, format string,
	team1Used, team1H2H, team2Used, team2H2H int,
	team1Fallback, team2Fallback bool,
	team1Prob, team2Prob float64,
	insufficientData bool,
) {
	al.WithFields(logrus.Fields{
		"prediction_id":     predictionID,
		"team1":             team1,
		"team2":             team2,
		"format":            format,
		"team1_matches":     team1Used,
		"team1_h2h_matches": team1H2H,
		"team2_matches":     team2Used,
		"team2_h2h_matches": team2H2H,
		"team1_fallback":    team1Fallback,
		"team2_fallback":    team2Fallback,
		"team1_prob":        team1Prob,
		"team2_prob":        team2Prob,
		"insufficient_data": insufficientData,
	}).Info("Prediction recorded")
}

// LogTableSwap logs a canonical table generation swap after a reload.
func (al *PredictionAuditLogger) LogTableSwap(rowsBefore, rowsAfter int, source string) {
	al.WithFields(logrus.Fields{
		"rows_before": rowsBefore,
		"rows_after":  rowsAfter,
		"source":      source,
	}).Info("Canonical table swapped")
}
