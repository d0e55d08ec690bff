package core

import (
	"context"
	"time"

	"github.com/loverprompt/loverprompt-backend/internal/generator"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// UserService defines profile operations.
type UserService interface {
	// GetOrCreate returns the caller's profile, creating it on first sign-in.
	GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.UserProfile, bool, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error)
	ListUsers(ctx context.Context, limit int) ([]models.UserProfile, error)
	UpdateSubscription(ctx context.Context, uid string, req models.UpdateSubscriptionRequest) (*models.UserProfile, error)
}

// SocialService defines follow graph operations.
type SocialService interface {
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	GetFollowCounts(ctx context.Context, uid string) (*models.FollowCounts, error)
	GetFollowers(ctx context.Context, uid string) ([]models.UserProfile, error)
	GetFollowing(ctx context.Context, uid string) ([]models.UserProfile, error)
}

// ComplimentService defines compliment and feed operations.
type ComplimentService interface {
	Create(ctx context.Context, userID string, req models.CreateComplimentRequest) (*models.Compliment, error)
	// Get returns a compliment the viewer may read: public ones, or the viewer's own.
	Get(ctx context.Context, viewerID, id string) (*models.Compliment, error)
	Delete(ctx context.Context, userID, id string) error
	ListByAuthor(ctx context.Context, viewerID, authorID string) ([]models.Compliment, error)
	ListSaved(ctx context.Context, userID string) ([]models.Compliment, error)
	ToggleLike(ctx context.Context, userID, id string) (bool, error)
	ToggleSave(ctx context.Context, userID, id string) (bool, error)
	SetVisibility(ctx context.Context, userID, id string, isPublic bool) error
	PublicFeed(ctx context.Context, limit int, cursor string) (*models.Page[models.Compliment], error)
	FollowingFeed(ctx context.Context, userID string, limit int, cursor string) (*models.Page[models.Compliment], error)
}

// CommentService defines comment operations on compliments and stories.
type CommentService interface {
	Add(ctx context.Context, userID string, kind models.ParentKind, parentID, text string) (*models.Comment, error)
	List(ctx context.Context, viewerID string, kind models.ParentKind, parentID string) ([]models.Comment, error)
	Delete(ctx context.Context, userID string, kind models.ParentKind, parentID, commentID string) error
}

// StoryService defines story operations.
type StoryService interface {
	Create(ctx context.Context, userID string, req models.CreateStoryRequest) (*models.Story, error)
	Get(ctx context.Context, id string) (*models.Story, error)
	Feed(ctx context.Context, limit int, cursor string) (*models.Page[models.Story], error)
	ToggleLike(ctx context.Context, userID, id string) (bool, error)
	Delete(ctx context.Context, userID, id string) error
}

// ReminderService defines reminder operations.
type ReminderService interface {
	Create(ctx context.Context, userID string, req models.CreateReminderRequest) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateReminderRequest) (*models.Reminder, error)
	Delete(ctx context.Context, userID, id string) error
	// DispatchDue emails owners of due reminders and marks them sent. It returns how
	// many were sent.
	DispatchDue(ctx context.Context, now time.Time, limit int) (int, error)
}

// TimelineService defines timeline operations.
type TimelineService interface {
	Create(ctx context.Context, userID string, req models.CreateTimelineEventRequest) (*models.TimelineEvent, error)
	// List returns ownerID's events; viewers other than the owner only see public events.
	List(ctx context.Context, ownerID, viewerID string) ([]models.TimelineEvent, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateTimelineEventRequest) (*models.TimelineEvent, error)
	Delete(ctx context.Context, userID, id string) error
}

// GenerationService produces compliments with the text generator.
type GenerationService interface {
	Generate(ctx context.Context, userID string, req models.GenerateComplimentRequest) (*models.GenerateComplimentResponse, error)
	Catalog() *generator.Catalog
}

// EmailService sends application emails.
type EmailService interface {
	ShareCompliment(ctx context.Context, senderID, complimentID string, req models.ShareEmailRequest) error
	SendReminder(ctx context.Context, to string, r models.Reminder) error
}

// TextGenerator completes a prompt. *generator.Client implements it.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Counter is the slice of the cache used for generation quotas. *cache.RedisCache implements it.
type Counter interface {
	Incr(ctx context.Context, key string, expiration time.Duration) (int64, error)
}
