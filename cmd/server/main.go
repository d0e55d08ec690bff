package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/api"
	"github.com/loverprompt/loverprompt-backend/internal/config"
	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/crypto"
	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/generator"
	"github.com/loverprompt/loverprompt-backend/internal/middleware"
	"github.com/loverprompt/loverprompt-backend/internal/scheduler"
	"github.com/loverprompt/loverprompt-backend/pkg/cache"
	"github.com/loverprompt/loverprompt-backend/pkg/mailer"
	"github.com/loverprompt/loverprompt-backend/pkg/messagequeue"
)

func main() {
	// .env is a development convenience; production sets variables directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.IsRelease())
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server exiting gracefully")
}

func newLogger(release bool) (*zap.Logger, error) {
	if release {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()

	clients, err := db.NewClients(initCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer clients.Close()

	cursors, err := newCursorCodec(cfg, logger)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := db.NewFirestoreUserRepository(clients.Firestore, logger)
	complimentRepo := db.NewFirestoreComplimentRepository(clients.Firestore, cursors, logger)
	storyRepo := db.NewFirestoreStoryRepository(clients.Firestore, cursors, logger)
	commentRepo := db.NewFirestoreCommentRepository(clients.Firestore, logger)
	reminderRepo := db.NewFirestoreReminderRepository(clients.Firestore, logger)
	timelineRepo := db.NewFirestoreTimelineRepository(clients.Firestore, logger)

	// Optional infrastructure
	var quota core.Counter
	if cfg.RedisAddress != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		quota = redisCache
	} else {
		logger.Warn("REDIS_ADDRESS not set, free-tier generation quota is disabled")
	}

	m, closeMailer, err := newMailer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeMailer()

	textGen, err := generator.NewClient(generator.Config{
		APIURL:    cfg.TextGenAPIURL,
		APIKey:    cfg.TextGenAPIKey,
		Model:     cfg.TextGenModel,
		MaxTokens: cfg.TextGenMaxTokens,
		Timeout:   cfg.TextGenTimeout,
	}, logger)
	if err != nil {
		return err
	}
	catalog, err := generator.DefaultCatalog()
	if err != nil {
		return err
	}

	// Services
	userService := core.NewUserService(userRepo, logger)
	complimentService := core.NewComplimentService(complimentRepo, userRepo, logger)
	emailService := core.NewEmailService(m, complimentService, userService, logger)
	reminderService := core.NewReminderService(reminderRepo, userRepo, emailService, logger)
	services := api.Services{
		Users:       userService,
		Social:      core.NewSocialService(userRepo, logger),
		Compliments: complimentService,
		Comments:    core.NewCommentService(commentRepo, complimentRepo, userRepo, logger),
		Stories:     core.NewStoryService(storyRepo, userRepo, logger),
		Reminders:   reminderService,
		Timeline:    core.NewTimelineService(timelineRepo, logger),
		Generation:  core.NewGenerationService(textGen, catalog, complimentRepo, userRepo, quota, cfg.FreeDailyGenerations, logger),
		Email:       emailService,
	}

	jobs := scheduler.New(logger)
	if err := jobs.Add(cfg.ReminderSchedule, scheduler.NewReminderJob(reminderService, cfg.ReminderBatch, time.Minute, logger)); err != nil {
		return err
	}
	jobs.Start()

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.ClientURL))
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	api.SetupRoutes(router, services, clients.Auth, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("address", srv.Addr), zap.String("ginMode", gin.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	jobs.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newCursorCodec seals feed cursors with CURSOR_SECRET. Without it a random key is used and
// cursors do not survive a restart.
func newCursorCodec(cfg *config.Config, logger *zap.Logger) (*db.CursorCodec, error) {
	var key []byte
	var err error
	if cfg.CursorSecret != "" {
		key, err = crypto.KeyFromBase64(cfg.CursorSecret)
	} else {
		logger.Warn("CURSOR_SECRET not set, using an ephemeral cursor key")
		key, err = crypto.RandomKey()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cursor key: %w", err)
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, err
	}
	return db.NewCursorCodec(sealer), nil
}

// newMailer publishes to RabbitMQ when RABBITMQ_URL is set, so the mailworker delivers
// asynchronously. Otherwise mail is sent inline.
func newMailer(cfg *config.Config, logger *zap.Logger) (mailer.Mailer, func(), error) {
	if cfg.RabbitMQURL != "" {
		mq, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Email delivery via queue", zap.String("queue", cfg.EmailQueue))
		return mailer.NewQueueMailer(mq, cfg.EmailQueue), func() { _ = mq.Close() }, nil
	}
	m, err := mailer.NewFromProvider(cfg.MailProviderConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	logger.Info("Email delivery inline", zap.String("provider", cfg.MailProvider))
	return m, func() {}, nil
}
