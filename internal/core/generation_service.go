package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/generator"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const quotaWindow = 24 * time.Hour

type generationService struct {
	gen            TextGenerator
	catalog        *generator.Catalog
	complimentRepo db.ComplimentRepository
	userRepo       db.UserRepository
	quota          Counter // nil disables the quota
	freeDaily      int
	logger         *zap.Logger
	now            func() time.Time
}

// NewGenerationService creates a new GenerationService. Pass a nil quota to disable
// the free-tier daily limit.
func NewGenerationService(gen TextGenerator, catalog *generator.Catalog, complimentRepo db.ComplimentRepository, userRepo db.UserRepository, quota Counter, freeDaily int, logger *zap.Logger) GenerationService {
	return &generationService{
		gen:            gen,
		catalog:        catalog,
		complimentRepo: complimentRepo,
		userRepo:       userRepo,
		quota:          quota,
		freeDaily:      freeDaily,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *generationService) Catalog() *generator.Catalog { return s.catalog }

func (s *generationService) Generate(ctx context.Context, userID string, req models.GenerateComplimentRequest) (*models.GenerateComplimentResponse, error) {
	const op = "compliments.Generate"
	if err := s.catalog.Validate(req.Style, req.Tone); err != nil {
		return nil, invalid(op, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user '%s': %w", userID, err)
	}
	if err := s.checkQuota(ctx, user); err != nil {
		return nil, err
	}

	prompt := s.catalog.Prompt(req.Text, req.Style, req.Tone, req.RecipientName)
	content, err := s.gen.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("Compliment generation failed", zap.String("uid", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	resp := &models.GenerateComplimentResponse{Content: content}
	if !req.Save {
		return resp, nil
	}
	c, err := s.complimentRepo.Create(ctx, &models.Compliment{
		AuthorID:      userID,
		AuthorName:    user.DisplayName,
		Content:       content,
		Style:         strings.ToLower(req.Style),
		Tone:          strings.ToLower(req.Tone),
		Mood:          req.Mood,
		RecipientName: req.RecipientName,
		IsSaved:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save generated compliment: %w", err)
	}
	resp.Compliment = c
	return resp, nil
}

// checkQuota counts one generation against a free-tier user's UTC day. Counter errors
// are logged and the request is allowed.
func (s *generationService) checkQuota(ctx context.Context, user *models.UserProfile) error {
	now := s.now().UTC()
	if s.quota == nil || user.IsPremium(now) {
		return nil
	}
	key := quotaKey(user.UID, now)
	n, err := s.quota.Incr(ctx, key, quotaWindow)
	if err != nil {
		s.logger.Warn("Generation quota unavailable", zap.String("uid", user.UID), zap.Error(err))
		return nil
	}
	if n > int64(s.freeDaily) {
		return fmt.Errorf("%w: %d per day on the free plan", ErrQuotaExceeded, s.freeDaily)
	}
	return nil
}

func quotaKey(uid string, t time.Time) string {
	return fmt.Sprintf("gen:quota:%s:%s", uid, t.Format("20060102"))
}
