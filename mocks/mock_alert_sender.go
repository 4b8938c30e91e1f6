package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) SendRiskAlert(ctx context.Context, to []string, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
