package utils

import (
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/inmohub/listings/shared/config"
)

var (
	ErrSMTPNotConfigured = errors.New("missing SMTP configuration")
	ErrNoRecipient       = errors.New("missing recipient")
)

// EmailSender delivers review notifications over SMTP.
type EmailSender struct {
	cfg config.SMTPConfig
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

func (s *EmailSender) configured() bool {
	return s.cfg.Host != "" && s.cfg.Port != "" && s.cfg.User != "" && s.cfg.Password != ""
}

// SendEmail sends an HTML message to a single recipient.
func (s *EmailSender) SendEmail(to, subject, body string) error {
	if !s.configured() {
		return ErrSMTPNotConfigured
	}
	rcpt, err := mail.ParseAddress(to)
	if err != nil || rcpt.Address == "" {
		return ErrNoRecipient
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	msg := composeMessage(s.cfg.User, rcpt.Address, subject, body)
	if err := smtp.SendMail(addr, auth, s.cfg.User, []string{rcpt.Address}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", rcpt.Address, err)
	}
	return nil
}

func composeMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	// header values must stay on one line
	b.WriteString("Subject: " + strings.NewReplacer("\r", " ", "\n", " ").Replace(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
