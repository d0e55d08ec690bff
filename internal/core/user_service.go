package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type userService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.UserProfile, bool, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, uid, email, displayName, photoURL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to initialize user '%s': %w", uid, err)
	}
	if created {
		s.logger.Info("Created user profile", zap.String("uid", uid))
	}
	return user, created, nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}
	return user, nil
}

func (s *userService) SaveProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	if req != nil && req.DisplayName != nil && *req.DisplayName == "" {
		return nil, invalid("users.SaveProfile", fmt.Errorf("displayName cannot be empty"))
	}
	if req != nil && req.Preferences != nil && req.Preferences.Language != nil && *req.Preferences.Language == "" {
		return nil, invalid("users.SaveProfile", fmt.Errorf("language cannot be empty"))
	}
	user, err := s.userRepo.Save(ctx, uid, req)
	if err != nil {
		return nil, fmt.Errorf("failed to save user '%s': %w", uid, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit int) ([]models.UserProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	users, err := s.userRepo.GetAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateSubscription(ctx context.Context, uid string, req models.UpdateSubscriptionRequest) (*models.UserProfile, error) {
	sub := models.Subscription{Tier: req.Tier, ExpiresAt: req.ExpiresAt}
	if sub.Tier == models.TierFree {
		sub.ExpiresAt = nil
	}
	user, err := s.userRepo.UpdateSubscription(ctx, uid, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription for '%s': %w", uid, err)
	}
	s.logger.Info("Subscription updated", zap.String("uid", uid), zap.String("tier", sub.Tier))
	return user, nil
}
