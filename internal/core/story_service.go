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

type storyService struct {
	storyRepo db.StoryRepository
	userRepo  db.UserRepository
	logger    *zap.Logger
}

// NewStoryService creates a new StoryService instance.
func NewStoryService(storyRepo db.StoryRepository, userRepo db.UserRepository, logger *zap.Logger) StoryService {
	return &storyService{storyRepo: storyRepo, userRepo: userRepo, logger: logger}
}

func (s *storyService) Create(ctx context.Context, userID string, req models.CreateStoryRequest) (*models.Story, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, invalid("stories.Create", errors.New("content cannot be empty"))
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author '%s': %w", userID, err)
	}
	story, err := s.storyRepo.Create(ctx, &models.Story{
		AuthorID:    userID,
		AuthorName:  author.DisplayName,
		AuthorPhoto: author.PhotoURL,
		Content:     content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return story, nil
}

func (s *storyService) Get(ctx context.Context, id string) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get story '%s': %w", id, err)
	}
	return story, nil
}

func (s *storyService) Feed(ctx context.Context, limit int, cursor string) (*models.Page[models.Story], error) {
	page, err := s.storyRepo.GetPage(ctx, pageSize(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	return page, nil
}

func (s *storyService) ToggleLike(ctx context.Context, userID, id string) (bool, error) {
	liked, err := s.storyRepo.ToggleLike(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like on story '%s': %w", id, err)
	}
	return liked, nil
}

func (s *storyService) Delete(ctx context.Context, userID, id string) error {
	if err := s.storyRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete story '%s': %w", id, err)
	}
	return nil
}
