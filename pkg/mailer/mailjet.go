package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailjet/mailjet-apiv3-go"
)

// MailjetMailer sends mail through the Mailjet v3.1 send API.
type MailjetMailer struct {
	sender string
	send   func(*mailjet.MessagesV31) error
}

// NewMailjetMailer returns a mailer using the given API key pair.
func NewMailjetMailer(publicKey, privateKey, sender string) (*MailjetMailer, error) {
	if publicKey == "" || privateKey == "" {
		return nil, errors.New("mailjet public and private keys must be provided")
	}
	if sender == "" {
		return nil, errors.New("sender email address cannot be empty")
	}
	clt := mailjet.NewMailjetClient(publicKey, privateKey)
	return &MailjetMailer{
		sender: sender,
		send: func(msgs *mailjet.MessagesV31) error {
			_, err := clt.SendMailV31(msgs)
			return err
		},
	}, nil
}

func (m *MailjetMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := Message{To: to, Subject: subject, Body: body}
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info := mailjet.InfoMessagesV31{
		From:    &mailjet.RecipientV31{Email: m.sender},
		To:      &mailjet.RecipientsV31{mailjet.RecipientV31{Email: to}},
		Subject: subject,
	}
	if isHTML(body) {
		info.HTMLPart = body
	} else {
		info.TextPart = body
	}

	if err := m.send(&mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{info}}); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}
	return nil
}
