package db

import (
	"context"
	"time"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// UserRepository defines the storage operations for user profiles and the follow graph.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
	// GetByIDs returns the profiles that exist among uids, in no particular order.
	GetByIDs(ctx context.Context, uids []string) ([]models.UserProfile, error)
	GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.UserProfile, bool, error)
	// Save merge-upserts the patch and returns the stored profile with defaults applied.
	Save(ctx context.Context, uid string, patch *models.UpdateProfileRequest) (*models.UserProfile, error)
	GetAll(ctx context.Context, limit int) ([]models.UserProfile, error)
	UpdateSubscription(ctx context.Context, uid string, sub models.Subscription) (*models.UserProfile, error)
	// Follow and Unfollow report whether the graph changed.
	Follow(ctx context.Context, followerID, targetID string) (bool, error)
	Unfollow(ctx context.Context, followerID, targetID string) (bool, error)
}

// ComplimentRepository defines the storage operations for compliments.
type ComplimentRepository interface {
	Create(ctx context.Context, c *models.Compliment) (*models.Compliment, error)
	GetByID(ctx context.Context, id string) (*models.Compliment, error)
	Delete(ctx context.Context, id, userID string) error
	GetByAuthor(ctx context.Context, authorID string, publicOnly bool) ([]models.Compliment, error)
	GetSaved(ctx context.Context, authorID string) ([]models.Compliment, error)
	ToggleLike(ctx context.Context, id, userID string) (bool, error)
	ToggleSave(ctx context.Context, id, userID string) (bool, error)
	SetVisibility(ctx context.Context, id, userID string, isPublic bool) error
	GetPublic(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Compliment], error)
	// GetPublicByAuthors pages public compliments written by any of authorIDs.
	GetPublicByAuthors(ctx context.Context, authorIDs []string, pageSize int, cursor string) (*models.Page[models.Compliment], error)
}

// StoryRepository defines the storage operations for stories.
type StoryRepository interface {
	Create(ctx context.Context, s *models.Story) (*models.Story, error)
	GetByID(ctx context.Context, id string) (*models.Story, error)
	GetPage(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Story], error)
	ToggleLike(ctx context.Context, id, userID string) (bool, error)
	Delete(ctx context.Context, id, userID string) error
}

// CommentRepository defines the storage operations for comments under compliments and stories.
type CommentRepository interface {
	Add(ctx context.Context, kind models.ParentKind, parentID string, c *models.Comment) (*models.Comment, error)
	List(ctx context.Context, kind models.ParentKind, parentID string) ([]models.Comment, error)
	Delete(ctx context.Context, kind models.ParentKind, parentID, commentID, userID string) error
}

// ReminderRepository defines the storage operations for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, r *models.Reminder) (*models.Reminder, error)
	GetByUser(ctx context.Context, userID string) ([]models.Reminder, error)
	Update(ctx context.Context, id, userID string, patch *models.UpdateReminderRequest) (*models.Reminder, error)
	Delete(ctx context.Context, id, userID string) error
	GetDue(ctx context.Context, now time.Time, after *models.Reminder, limit int) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// TimelineRepository defines the storage operations for timeline events.
type TimelineRepository interface {
	Create(ctx context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error)
	GetByUser(ctx context.Context, userID string, publicOnly bool) ([]models.TimelineEvent, error)
	Update(ctx context.Context, id, userID string, patch *models.UpdateTimelineEventRequest) (*models.TimelineEvent, error)
	Delete(ctx context.Context, id, userID string) error
}
