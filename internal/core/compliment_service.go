package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type complimentService struct {
	complimentRepo db.ComplimentRepository
	userRepo       db.UserRepository
	logger         *zap.Logger
}

// NewComplimentService creates a new ComplimentService instance.
func NewComplimentService(complimentRepo db.ComplimentRepository, userRepo db.UserRepository, logger *zap.Logger) ComplimentService {
	return &complimentService{complimentRepo: complimentRepo, userRepo: userRepo, logger: logger}
}

func (s *complimentService) Create(ctx context.Context, userID string, req models.CreateComplimentRequest) (*models.Compliment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, invalid("compliments.Create", errors.New("content cannot be empty"))
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author '%s': %w", userID, err)
	}
	c, err := s.complimentRepo.Create(ctx, &models.Compliment{
		AuthorID:      userID,
		AuthorName:    author.DisplayName,
		Content:       content,
		Style:         req.Style,
		Tone:          req.Tone,
		Mood:          req.Mood,
		RecipientName: req.RecipientName,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create compliment: %w", err)
	}
	return c, nil
}

func (s *complimentService) Get(ctx context.Context, viewerID, id string) (*models.Compliment, error) {
	c, err := s.complimentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get compliment '%s': %w", id, err)
	}
	if !c.IsPublic && c.AuthorID != viewerID {
		return nil, denied("compliments.Get", "compliment %s is private", id)
	}
	return c, nil
}

func (s *complimentService) Delete(ctx context.Context, userID, id string) error {
	if err := s.complimentRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete compliment '%s': %w", id, err)
	}
	s.logger.Info("Compliment deleted", zap.String("compliment_id", id), zap.String("uid", userID))
	return nil
}

// ListByAuthor returns all of the author's compliments to the author and only public
// ones to everyone else.
func (s *complimentService) ListByAuthor(ctx context.Context, viewerID, authorID string) ([]models.Compliment, error) {
	list, err := s.complimentRepo.GetByAuthor(ctx, authorID, viewerID != authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliments for '%s': %w", authorID, err)
	}
	return list, nil
}

func (s *complimentService) ListSaved(ctx context.Context, userID string) ([]models.Compliment, error) {
	list, err := s.complimentRepo.GetSaved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved compliments: %w", err)
	}
	return list, nil
}

func (s *complimentService) ToggleLike(ctx context.Context, userID, id string) (bool, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return false, err
	}
	liked, err := s.complimentRepo.ToggleLike(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like on '%s': %w", id, err)
	}
	return liked, nil
}

func (s *complimentService) ToggleSave(ctx context.Context, userID, id string) (bool, error) {
	saved, err := s.complimentRepo.ToggleSave(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle save on '%s': %w", id, err)
	}
	return saved, nil
}

func (s *complimentService) SetVisibility(ctx context.Context, userID, id string, isPublic bool) error {
	if err := s.complimentRepo.SetVisibility(ctx, id, userID, isPublic); err != nil {
		return fmt.Errorf("failed to set visibility on '%s': %w", id, err)
	}
	return nil
}

func (s *complimentService) PublicFeed(ctx context.Context, limit int, cursor string) (*models.Page[models.Compliment], error) {
	page, err := s.complimentRepo.GetPublic(ctx, pageSize(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to load public feed: %w", err)
	}
	return page, nil
}

// FollowingFeed pages public compliments written by users the caller follows.
func (s *complimentService) FollowingFeed(ctx context.Context, userID string, limit int, cursor string) (*models.Page[models.Compliment], error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following set: %w", err)
	}
	page, err := s.complimentRepo.GetPublicByAuthors(ctx, user.Following, pageSize(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to load following feed: %w", err)
	}
	return page, nil
}
