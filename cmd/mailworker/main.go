// Command mailworker consumes queued emails and delivers them over SMTP or Mailjet.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/config"
	"github.com/loverprompt/loverprompt-backend/pkg/mailer"
	"github.com/loverprompt/loverprompt-backend/pkg/messagequeue"
)

func main() {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	var logger *zap.Logger
	if cfg.IsRelease() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.RabbitMQURL == "" {
		logger.Fatal("RABBITMQ_URL is required for the mail worker")
	}

	m, err := mailer.NewFromProvider(cfg.MailProviderConfig())
	if err != nil {
		logger.Fatal("Failed to create mailer", zap.Error(err))
	}

	mq, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: cfg.RabbitMQURL}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mq.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := mailer.Deliver(m, func(body []byte, err error) {
		logger.Error("Dropping undeliverable email", zap.Error(err), zap.Int("bytes", len(body)))
	})

	logger.Info("Mail worker consuming", zap.String("queue", cfg.EmailQueue), zap.String("provider", cfg.MailProvider))
	if err := mq.Consume(ctx, cfg.EmailQueue, handler); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Consumer stopped", zap.Error(err))
	}
	logger.Info("Mail worker exiting")
}
