// Package mailer delivers transactional email over SMTP. Delivery is
// best-effort: callers surface failures as flash messages and never roll
// back database writes that already committed.
package mailer

import (
	"trading_dashboard/internal/config"

	"gopkg.in/gomail.v2" // SMTP client
)

// SMTP sends mail through the configured SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// New builds an SMTP mailer from config. Credentials come from the
// environment only.
func New(cfg *config.Config) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// SendText delivers a plain-text message and waits for the result.
func (m *SMTP) SendText(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// SendHTML delivers an HTML message and waits for the result.
func (m *SMTP) SendHTML(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}
