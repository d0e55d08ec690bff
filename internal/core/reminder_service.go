package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type reminderService struct {
	reminderRepo db.ReminderRepository
	userRepo     db.UserRepository
	email        EmailService
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService instance.
func NewReminderService(reminderRepo db.ReminderRepository, userRepo db.UserRepository, email EmailService, logger *zap.Logger) ReminderService {
	return &reminderService{reminderRepo: reminderRepo, userRepo: userRepo, email: email, logger: logger}
}

func (s *reminderService) Create(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("reminders.Create", errors.New("title cannot be empty"))
	}
	r, err := s.reminderRepo.Create(ctx, &models.Reminder{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return r, nil
}

func (s *reminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	list, err := s.reminderRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return list, nil
}

func (s *reminderService) Update(ctx context.Context, userID, id string, req *models.UpdateReminderRequest) (*models.Reminder, error) {
	r, err := s.reminderRepo.Update(ctx, id, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder '%s': %w", id, err)
	}
	return r, nil
}

func (s *reminderService) Delete(ctx context.Context, userID, id string) error {
	if err := s.reminderRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete reminder '%s': %w", id, err)
	}
	return nil
}

// maxDuePages bounds how far one dispatch run pages past reminders it could not send.
const maxDuePages = 10

// DispatchDue sends up to limit due reminders to their owners. A reminder is marked sent only
// after its email went out, so transient failures are retried on the next run. Reminders whose
// owner is gone or has no email are retired with MarkFailed.
func (s *reminderService) DispatchDue(ctx context.Context, now time.Time, limit int) (int, error) {
	owners := map[string]*models.UserProfile{}
	sent := 0
	var after *models.Reminder
	for page := 0; page < maxDuePages && sent < limit; page++ {
		due, err := s.reminderRepo.GetDue(ctx, now, after, limit)
		if err != nil {
			return sent, fmt.Errorf("failed to load due reminders: %w", err)
		}
		for i := range due {
			if err := ctx.Err(); err != nil {
				return sent, err
			}
			if s.dispatchOne(ctx, owners, due[i]) {
				sent++
				if sent == limit {
					return sent, nil
				}
			}
		}
		if len(due) < limit {
			break
		}
		after = &due[len(due)-1]
	}
	return sent, nil
}

func (s *reminderService) dispatchOne(ctx context.Context, owners map[string]*models.UserProfile, r models.Reminder) bool {
	owner, ok := owners[r.UserID]
	if !ok {
		var err error
		owner, err = s.userRepo.GetByID(ctx, r.UserID)
		switch {
		case errors.Is(err, db.ErrNotFound):
			owner = nil
		case err != nil:
			s.logger.Warn("Skipping reminder, owner unavailable", zap.String("reminder_id", r.ID), zap.String("uid", r.UserID), zap.Error(err))
			return false
		}
		owners[r.UserID] = owner
	}
	if owner == nil || owner.Email == "" {
		reason := "owner has no email"
		if owner == nil {
			reason = "owner not found"
		}
		s.logger.Warn("Retiring undeliverable reminder", zap.String("reminder_id", r.ID), zap.String("uid", r.UserID), zap.String("reason", reason))
		if err := s.reminderRepo.MarkFailed(ctx, r.ID, reason); err != nil {
			s.logger.Error("Failed to retire reminder", zap.String("reminder_id", r.ID), zap.Error(err))
		}
		return false
	}
	if err := s.email.SendReminder(ctx, owner.Email, r); err != nil {
		s.logger.Warn("Reminder email failed", zap.String("reminder_id", r.ID), zap.Error(err))
		return false
	}
	if err := s.reminderRepo.MarkSent(ctx, r.ID); err != nil {
		s.logger.Error("Failed to mark reminder sent", zap.String("reminder_id", r.ID), zap.Error(err))
		return false
	}
	return true
}
