package email

// Email is a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends transactional mail.
type Provider interface {
	// Send delivers a prepared message
	Send(email *Email) error

	// SendVerification sends the email-verification link
	SendVerification(to, token string) error

	// SendWelcome greets a newly registered user
	SendWelcome(to, name string) error

	// SendSubscriptionActivated confirms a paid upgrade
	SendSubscriptionActivated(to, planName string) error

	// SendPasswordReset sends the password-reset link
	SendPasswordReset(to, token string) error

	// Close releases the underlying connection
	Close() error
}
