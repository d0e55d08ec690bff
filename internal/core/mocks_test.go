package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// ---------------------------------------------------------------------------
// Repository mocks
// ---------------------------------------------------------------------------

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*models.UserProfile)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	args := m.Called(ctx, uids)
	u, _ := args.Get(0).([]models.UserProfile)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.UserProfile, bool, error) {
	args := m.Called(ctx, uid, email, displayName, photoURL)
	u, _ := args.Get(0).(*models.UserProfile)
	return u, args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) Save(ctx context.Context, uid string, patch *models.UpdateProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, uid, patch)
	u, _ := args.Get(0).(*models.UserProfile)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetAll(ctx context.Context, limit int) ([]models.UserProfile, error) {
	args := m.Called(ctx, limit)
	u, _ := args.Get(0).([]models.UserProfile)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdateSubscription(ctx context.Context, uid string, sub models.Subscription) (*models.UserProfile, error) {
	args := m.Called(ctx, uid, sub)
	u, _ := args.Get(0).(*models.UserProfile)
	return u, args.Error(1)
}

func (m *mockUserRepo) Follow(ctx context.Context, followerID, targetID string) (bool, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Error(1)
}

type mockComplimentRepo struct{ mock.Mock }

func (m *mockComplimentRepo) Create(ctx context.Context, c *models.Compliment) (*models.Compliment, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(*models.Compliment)
	return out, args.Error(1)
}

func (m *mockComplimentRepo) GetByID(ctx context.Context, id string) (*models.Compliment, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Compliment)
	return out, args.Error(1)
}

func (m *mockComplimentRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockComplimentRepo) GetByAuthor(ctx context.Context, authorID string, publicOnly bool) ([]models.Compliment, error) {
	args := m.Called(ctx, authorID, publicOnly)
	out, _ := args.Get(0).([]models.Compliment)
	return out, args.Error(1)
}

func (m *mockComplimentRepo) GetSaved(ctx context.Context, authorID string) ([]models.Compliment, error) {
	args := m.Called(ctx, authorID)
	out, _ := args.Get(0).([]models.Compliment)
	return out, args.Error(1)
}

func (m *mockComplimentRepo) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplimentRepo) ToggleSave(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplimentRepo) SetVisibility(ctx context.Context, id, userID string, isPublic bool) error {
	return m.Called(ctx, id, userID, isPublic).Error(0)
}

func (m *mockComplimentRepo) GetPublic(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Compliment], error) {
	args := m.Called(ctx, pageSize, cursor)
	out, _ := args.Get(0).(*models.Page[models.Compliment])
	return out, args.Error(1)
}

func (m *mockComplimentRepo) GetPublicByAuthors(ctx context.Context, authorIDs []string, pageSize int, cursor string) (*models.Page[models.Compliment], error) {
	args := m.Called(ctx, authorIDs, pageSize, cursor)
	out, _ := args.Get(0).(*models.Page[models.Compliment])
	return out, args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Add(ctx context.Context, kind models.ParentKind, parentID string, c *models.Comment) (*models.Comment, error) {
	args := m.Called(ctx, kind, parentID, c)
	out, _ := args.Get(0).(*models.Comment)
	return out, args.Error(1)
}

func (m *mockCommentRepo) List(ctx context.Context, kind models.ParentKind, parentID string) ([]models.Comment, error) {
	args := m.Called(ctx, kind, parentID)
	out, _ := args.Get(0).([]models.Comment)
	return out, args.Error(1)
}

func (m *mockCommentRepo) Delete(ctx context.Context, kind models.ParentKind, parentID, commentID, userID string) error {
	return m.Called(ctx, kind, parentID, commentID, userID).Error(0)
}

type mockReminderRepo struct{ mock.Mock }

func (m *mockReminderRepo) Create(ctx context.Context, r *models.Reminder) (*models.Reminder, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(*models.Reminder)
	return out, args.Error(1)
}

func (m *mockReminderRepo) GetByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]models.Reminder)
	return out, args.Error(1)
}

func (m *mockReminderRepo) Update(ctx context.Context, id, userID string, patch *models.UpdateReminderRequest) (*models.Reminder, error) {
	args := m.Called(ctx, id, userID, patch)
	out, _ := args.Get(0).(*models.Reminder)
	return out, args.Error(1)
}

func (m *mockReminderRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockReminderRepo) GetDue(ctx context.Context, now time.Time, after *models.Reminder, limit int) ([]models.Reminder, error) {
	args := m.Called(ctx, now, after, limit)
	out, _ := args.Get(0).([]models.Reminder)
	return out, args.Error(1)
}

func (m *mockReminderRepo) MarkSent(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReminderRepo) MarkFailed(ctx context.Context, id, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type mockTimelineRepo struct{ mock.Mock }

func (m *mockTimelineRepo) Create(ctx context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error) {
	args := m.Called(ctx, e)
	out, _ := args.Get(0).(*models.TimelineEvent)
	return out, args.Error(1)
}

func (m *mockTimelineRepo) GetByUser(ctx context.Context, userID string, publicOnly bool) ([]models.TimelineEvent, error) {
	args := m.Called(ctx, userID, publicOnly)
	out, _ := args.Get(0).([]models.TimelineEvent)
	return out, args.Error(1)
}

func (m *mockTimelineRepo) Update(ctx context.Context, id, userID string, patch *models.UpdateTimelineEventRequest) (*models.TimelineEvent, error) {
	args := m.Called(ctx, id, userID, patch)
	out, _ := args.Get(0).(*models.TimelineEvent)
	return out, args.Error(1)
}

func (m *mockTimelineRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

// ---------------------------------------------------------------------------
// Collaborator mocks
// ---------------------------------------------------------------------------

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) Incr(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	args := m.Called(ctx, key, expiration)
	return args.Get(0).(int64), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type mockEmailService struct{ mock.Mock }

func (m *mockEmailService) ShareCompliment(ctx context.Context, senderID, complimentID string, req models.ShareEmailRequest) error {
	return m.Called(ctx, senderID, complimentID, req).Error(0)
}

func (m *mockEmailService) SendReminder(ctx context.Context, to string, r models.Reminder) error {
	return m.Called(ctx, to, r).Error(0)
}

type mockStoryRepo struct{ mock.Mock }

func (m *mockStoryRepo) Create(ctx context.Context, s *models.Story) (*models.Story, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(*models.Story)
	return out, args.Error(1)
}

func (m *mockStoryRepo) GetByID(ctx context.Context, id string) (*models.Story, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Story)
	return out, args.Error(1)
}

func (m *mockStoryRepo) GetPage(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Story], error) {
	args := m.Called(ctx, pageSize, cursor)
	out, _ := args.Get(0).(*models.Page[models.Story])
	return out, args.Error(1)
}

func (m *mockStoryRepo) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStoryRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
