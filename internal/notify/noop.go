package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &NoOpNotifier{log: log}
}

// SendReviewAlert logs and discards a review alert.
func (n *NoOpNotifier) SendReviewAlert(_ context.Context, alert *ReviewAlert) error {
	n.log.Debug("review alert discarded (no backend configured)",
		"appraisal_id", alert.AppraisalID,
		"claim", alert.ClaimNumber,
		"market_value", alert.MarketValue,
		"confidence", alert.ConfidenceLevel,
	)
	return nil
}
