package email

import (
	"fmt"

	"chefhire_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through an SMTP relay via gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
	appURL    string
}

func NewSMTPProvider(cfg *config.Config, appURL string) (*SMTPProvider, error) {
	if cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}

	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)

	return &SMTPProvider{
		dialer:    dialer,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		appURL:    appURL,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
	}
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", p.appURL, token)
	html, err := renderVerification(link)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Verify your ChefHire account",
		Body:     "Verify your email: " + link,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendWelcome(to, name string) error {
	html, err := renderWelcome(name)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Welcome to ChefHire",
		Body:     fmt.Sprintf("Welcome to ChefHire, %s!", name),
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendSubscriptionActivated(to, planName string) error {
	html, err := renderSubscription(planName)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Your ChefHire subscription is active",
		Body:     fmt.Sprintf("Your %s plan is now active.", planName),
		HTMLBody: html,
	})
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/reset-password?token=%s", p.appURL, token)
	html, err := renderPasswordReset(link)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Reset your ChefHire password",
		Body:     "Reset your password: " + link,
		HTMLBody: html,
	})
}

func (p *SMTPProvider) Close() error {
	// gomail dials per send; nothing to release.
	return nil
}
