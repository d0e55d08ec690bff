// Package mailer sends email through SMTP, Mailjet, or a RabbitMQ-backed queue
// drained by the mail worker.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMessage is returned when a message is missing a recipient or subject.
var ErrInvalidMessage = errors.New("invalid email message")

// Mailer sends one email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Message is the queued representation of an email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("%w: recipient email address cannot be empty", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: email subject cannot be empty", ErrInvalidMessage)
	}
	if strings.ContainsAny(m.To, "\r\n") || strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("%w: header values cannot contain line breaks", ErrInvalidMessage)
	}
	return nil
}

// isHTML reports whether body looks like HTML markup.
func isHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>")
}

func contentType(body string) string {
	if isHTML(body) {
		return "text/html; charset=UTF-8"
	}
	return "text/plain; charset=UTF-8"
}
