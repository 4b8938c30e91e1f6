package noop

import (
	"context"
	"log"

	"missioncopilot/internal/port"
)

type noopSender struct{}

// NewNoopSender returns an AlertSender that logs instead of sending.
// Used in development and when no email provider is configured.
func NewNoopSender() port.AlertSender {
	return &noopSender{}
}

func (s *noopSender) SendRiskAlert(_ context.Context, to []string, subject, _ string) error {
	log.Printf("[noop email] risk alert suppressed: to=%v subject=%q", to, subject)
	return nil
}
