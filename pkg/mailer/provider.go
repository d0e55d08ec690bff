package mailer

import (
	"fmt"
	"strings"
)

// ProviderConfig selects and configures a direct mail transport.
type ProviderConfig struct {
	Provider          string // "smtp" or "mailjet"
	SMTP              SMTPConfig
	MailjetPublicKey  string
	MailjetPrivateKey string
}

// NewFromProvider builds the Mailer named by cfg.Provider.
func NewFromProvider(cfg ProviderConfig) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "smtp":
		return NewSMTPMailer(cfg.SMTP)
	case "mailjet":
		return NewMailjetMailer(cfg.MailjetPublicKey, cfg.MailjetPrivateKey, cfg.SMTP.Sender)
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
