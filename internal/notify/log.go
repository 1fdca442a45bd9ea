package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes alerts to the structured log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Supported always reports true
func (n *LogNotifier) Supported() bool { return true }

// RequestPermission is granted without prompting
func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// ShowAlert logs the alert at info level
func (n *LogNotifier) ShowAlert(ctx context.Context, alert Alert) error {
	n.logger.Info("reminder alert",
		zap.String("reminder_id", alert.Tag),
		zap.String("title", alert.Title),
		zap.String("body", alert.Body),
		zap.Bool("require_interaction", alert.RequireInteraction),
		zap.Bool("silent", alert.Silent),
	)
	return nil
}
