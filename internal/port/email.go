package port

import "context"

// AlertSender delivers notifications for high and critical risk analyses.
type AlertSender interface {
	SendRiskAlert(ctx context.Context, to []string, subject, body string) error
}
