package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
)

// SMTPConfig holds SMTP server settings. Mailtrap is the default development server.
type SMTPConfig struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

// SMTPMailer sends mail with PLAIN auth over SMTP.
type SMTPMailer struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer validates cfg and returns an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, errors.New("SMTP host and port must be provided")
	}
	if cfg.Sender == "" {
		return nil, errors.New("sender email address cannot be empty")
	}
	if cfg.User == "" || cfg.Pass == "" {
		return nil, errors.New("SMTP username and password must be provided")
	}
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send delivers one message. The Content-Type is inferred from the body.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := Message{To: to, Subject: subject, Body: body}
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", to, m.cfg.Sender, mime.QEncoding.Encode("utf-8", subject), contentType(body), body))

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.sendMail(addr, auth, m.cfg.Sender, []string{to}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
