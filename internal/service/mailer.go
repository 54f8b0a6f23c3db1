package service

import (
	"fmt"

	"buddyremind/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers outbound mail. Delivery is synchronous and never retried;
// callers clean up any token state they set for the attempt when it fails.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewMailer returns an SMTP-backed mailer, or a disabled one when no SMTP
// host is configured (the development setup).
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return disabledMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

type disabledMailer struct{}

func (disabledMailer) Send(to, subject, body string) error {
	return fmt.Errorf("mail delivery is not configured")
}
