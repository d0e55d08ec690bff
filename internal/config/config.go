package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/loverprompt/loverprompt-backend/pkg/mailer"
)

// Config holds all configuration for the application.
type Config struct {
	Port       string `mapstructure:"PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`
	ClientURL  string `mapstructure:"CLIENT_URL"`
	ConfigFile string `mapstructure:"CONFIG_FILE"`

	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	// CursorSecret is a base64 encoded 32-byte key used to seal pagination cursors.
	CursorSecret string `mapstructure:"CURSOR_SECRET"`

	TextGenAPIURL    string        `mapstructure:"TEXTGEN_API_URL"`
	TextGenAPIKey    string        `mapstructure:"TEXTGEN_API_KEY"`
	TextGenModel     string        `mapstructure:"TEXTGEN_MODEL"`
	TextGenMaxTokens int           `mapstructure:"TEXTGEN_MAX_TOKENS"`
	TextGenTimeout   time.Duration `mapstructure:"TEXTGEN_TIMEOUT"`

	RedisAddress         string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	FreeDailyGenerations int    `mapstructure:"FREE_DAILY_GENERATIONS"`

	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	EmailQueue  string `mapstructure:"EMAIL_QUEUE"`

	MailProvider      string `mapstructure:"MAIL_PROVIDER"` // "smtp" or "mailjet"
	MailSender        string `mapstructure:"MAIL_SENDER"`
	SMTPHost          string `mapstructure:"SMTP_HOST"`
	SMTPPort          string `mapstructure:"SMTP_PORT"`
	SMTPUser          string `mapstructure:"SMTP_USER"`
	SMTPPass          string `mapstructure:"SMTP_PASS"`
	MailjetPublicKey  string `mapstructure:"MAILJET_PUBLIC_KEY"`
	MailjetPrivateKey string `mapstructure:"MAILJET_PRIVATE_KEY"`

	ReminderSchedule string `mapstructure:"REMINDER_SCHEDULE"`
	ReminderBatch    int    `mapstructure:"REMINDER_BATCH"`
}

var keys = []string{
	"PORT", "GIN_MODE", "CLIENT_URL", "CONFIG_FILE", "REQUEST_TIMEOUT",
	"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CURSOR_SECRET",
	"TEXTGEN_API_URL", "TEXTGEN_API_KEY", "TEXTGEN_MODEL", "TEXTGEN_MAX_TOKENS", "TEXTGEN_TIMEOUT",
	"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB", "FREE_DAILY_GENERATIONS",
	"RABBITMQ_URL", "EMAIL_QUEUE",
	"MAIL_PROVIDER", "MAIL_SENDER", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS",
	"MAILJET_PUBLIC_KEY", "MAILJET_PRIVATE_KEY",
	"REMINDER_SCHEDULE", "REMINDER_BATCH",
}

// LoadConfig loads configuration from environment variables and, when CONFIG_FILE is set,
// from a YAML file. Environment variables win over file values.
func LoadConfig() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("TEXTGEN_API_URL", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("TEXTGEN_MODEL", "gpt-4o-mini")
	v.SetDefault("TEXTGEN_MAX_TOKENS", 150)
	v.SetDefault("TEXTGEN_TIMEOUT", "30s")
	v.SetDefault("FREE_DAILY_GENERATIONS", 5)
	v.SetDefault("EMAIL_QUEUE", "loverprompt.email")
	v.SetDefault("MAIL_PROVIDER", "smtp")
	v.SetDefault("MAIL_SENDER", "noreply@loverprompt.app")
	v.SetDefault("SMTP_HOST", "smtp.mailtrap.io")
	v.SetDefault("SMTP_PORT", "2525")
	v.SetDefault("REMINDER_SCHEDULE", "@every 1m")
	v.SetDefault("REMINDER_BATCH", 100)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.ClientURL == "" {
		return errors.New("CLIENT_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.TextGenMaxTokens <= 0 {
		return errors.New("TEXTGEN_MAX_TOKENS must be positive")
	}
	if c.FreeDailyGenerations < 0 {
		return errors.New("FREE_DAILY_GENERATIONS cannot be negative")
	}
	switch strings.ToLower(c.MailProvider) {
	case "smtp", "mailjet":
	default:
		return fmt.Errorf("MAIL_PROVIDER must be 'smtp' or 'mailjet', got %q", c.MailProvider)
	}
	if c.ReminderBatch <= 0 {
		return errors.New("REMINDER_BATCH must be positive")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}

// MailProviderConfig returns the settings for a direct mail transport.
func (c *Config) MailProviderConfig() mailer.ProviderConfig {
	return mailer.ProviderConfig{
		Provider: c.MailProvider,
		SMTP: mailer.SMTPConfig{
			Host:   c.SMTPHost,
			Port:   c.SMTPPort,
			User:   c.SMTPUser,
			Pass:   c.SMTPPass,
			Sender: c.MailSender,
		},
		MailjetPublicKey:  c.MailjetPublicKey,
		MailjetPrivateKey: c.MailjetPrivateKey,
	}
}
