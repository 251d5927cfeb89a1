package app

import (
	"chefhire_backend/internal/email"
	"chefhire_backend/internal/logger"
)

// MockEmailProvider stands in when SMTP is not configured: sends are logged
// and dropped. Used for tests and local development.
type MockEmailProvider struct{}

var _ email.Provider = (*MockEmailProvider)(nil)

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.Info("mock email send", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendVerification(to, token string) error {
	logger.Info("mock verification email", "to", to)
	return nil
}

func (m *MockEmailProvider) SendWelcome(to, name string) error {
	logger.Info("mock welcome email", "to", to)
	return nil
}

func (m *MockEmailProvider) SendSubscriptionActivated(to, planName string) error {
	logger.Info("mock subscription email", "to", to, "plan", planName)
	return nil
}

func (m *MockEmailProvider) SendPasswordReset(to, token string) error {
	logger.Info("mock password reset email", "to", to)
	return nil
}

func (m *MockEmailProvider) Close() error { return nil }
