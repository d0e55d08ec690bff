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

type timelineService struct {
	timelineRepo db.TimelineRepository
	logger       *zap.Logger
}

// NewTimelineService creates a new TimelineService instance.
func NewTimelineService(timelineRepo db.TimelineRepository, logger *zap.Logger) TimelineService {
	return &timelineService{timelineRepo: timelineRepo, logger: logger}
}

func (s *timelineService) Create(ctx context.Context, userID string, req models.CreateTimelineEventRequest) (*models.TimelineEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("timeline.Create", errors.New("title cannot be empty"))
	}
	e, err := s.timelineRepo.Create(ctx, &models.TimelineEvent{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create timeline event: %w", err)
	}
	return e, nil
}

func (s *timelineService) List(ctx context.Context, ownerID, viewerID string) ([]models.TimelineEvent, error) {
	list, err := s.timelineRepo.GetByUser(ctx, ownerID, ownerID != viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline for '%s': %w", ownerID, err)
	}
	return list, nil
}

func (s *timelineService) Update(ctx context.Context, userID, id string, req *models.UpdateTimelineEventRequest) (*models.TimelineEvent, error) {
	e, err := s.timelineRepo.Update(ctx, id, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update timeline event '%s': %w", id, err)
	}
	return e, nil
}

func (s *timelineService) Delete(ctx context.Context, userID, id string) error {
	if err := s.timelineRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete timeline event '%s': %w", id, err)
	}
	return nil
}
