package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
)

// ErrSMTPNotConfigured is returned when the contact form is used without
// SMTP credentials.
var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Validate checks the required fields and the reply address.
func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Message) == "" {
		return errors.New("name and message are required")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("invalid email %q", m.Email)
	}
	// Header injection through the name or reply address.
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return errors.New("invalid characters in name or email")
	}
	return nil
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, m ContactMessage) error
}

type smtpMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg SMTPConfig) *smtpMailer {
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

func (s *smtpMailer) Send(ctx context.Context, m ContactMessage) error {
	if !s.cfg.Configured() {
		return ErrSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{s.cfg.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func (s *smtpMailer) compose(m ContactMessage) []byte {
	body := fmt.Sprintf(`
New contact form submission from bourlier.ai:

Name: %s
Email: %s
Message:
%s

---
Sent from the site contact form
`, m.Name, m.Email, m.Message)

	return []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: Site contact: " + m.Name + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
