package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type socialService struct {
	userRepo db.UserRepository
	logger   *zap.Logger
}

// NewSocialService creates a new SocialService instance.
func NewSocialService(userRepo db.UserRepository, logger *zap.Logger) SocialService {
	return &socialService{userRepo: userRepo, logger: logger}
}

func (s *socialService) Follow(ctx context.Context, followerID, targetID string) error {
	changed, err := s.userRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		return fmt.Errorf("failed to follow '%s': %w", targetID, err)
	}
	if changed {
		s.logger.Debug("Follow", zap.String("follower", followerID), zap.String("target", targetID))
	}
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID, targetID string) error {
	changed, err := s.userRepo.Unfollow(ctx, followerID, targetID)
	if err != nil {
		return fmt.Errorf("failed to unfollow '%s': %w", targetID, err)
	}
	if changed {
		s.logger.Debug("Unfollow", zap.String("follower", followerID), zap.String("target", targetID))
	}
	return nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow state: %w", err)
	}
	for _, id := range follower.Following {
		if id == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (s *socialService) GetFollowCounts(ctx context.Context, uid string) (*models.FollowCounts, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get follow counts: %w", err)
	}
	return &models.FollowCounts{Followers: user.FollowersCount, Following: user.FollowingCount}, nil
}

func (s *socialService) GetFollowers(ctx context.Context, uid string) ([]models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return s.profiles(ctx, user.Followers)
}

func (s *socialService) GetFollowing(ctx context.Context, uid string) ([]models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return s.profiles(ctx, user.Following)
}

// profiles loads uids and returns them in the order given, skipping deleted ones.
func (s *socialService) profiles(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	users, err := s.userRepo.GetByIDs(ctx, uids)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	byID := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		byID[u.UID] = u
	}
	out := make([]models.UserProfile, 0, len(users))
	for _, id := range uids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
