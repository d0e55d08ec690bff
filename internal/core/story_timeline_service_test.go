package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

func TestStoryCreate(t *testing.T) {
	ctx := context.Background()
	stories, users := &mockStoryRepo{}, &mockUserRepo{}
	svc := NewStoryService(stories, users, zaptest.NewLogger(t))

	_, err := svc.Create(ctx, "u1", models.CreateStoryRequest{Content: ""})
	assert.ErrorIs(t, err, db.ErrValidation)

	users.On("GetByID", ctx, "u1").Return(&models.UserProfile{UID: "u1", DisplayName: "Ana", PhotoURL: "a.png"}, nil)
	stories.On("Create", ctx, mock.MatchedBy(func(s *models.Story) bool {
		return s.AuthorName == "Ana" && s.AuthorPhoto == "a.png" && s.Content == "We met in the rain"
	})).Return(&models.Story{ID: "s1"}, nil)

	s, err := svc.Create(ctx, "u1", models.CreateStoryRequest{Content: "We met in the rain"})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
}

func TestStoryFeedAndDelete(t *testing.T) {
	ctx := context.Background()
	stories := &mockStoryRepo{}
	svc := NewStoryService(stories, &mockUserRepo{}, zaptest.NewLogger(t))
	stories.On("GetPage", ctx, defaultPageSize, "").Return(&models.Page[models.Story]{Items: []models.Story{{ID: "s1"}}}, nil)
	stories.On("Delete", ctx, "s1", "intruder").Return(db.ErrPermissionDenied)

	page, err := svc.Feed(ctx, -1, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", "s1"), db.ErrPermissionDenied)
}

func TestTimelineList_PublicOnlyForOthers(t *testing.T) {
	ctx := context.Background()
	repo := &mockTimelineRepo{}
	svc := NewTimelineService(repo, zaptest.NewLogger(t))
	repo.On("GetByUser", ctx, "owner", false).Return([]models.TimelineEvent{{ID: "e1"}, {ID: "e2"}}, nil)
	repo.On("GetByUser", ctx, "owner", true).Return([]models.TimelineEvent{{ID: "e1"}}, nil)

	own, err := svc.List(ctx, "owner", "owner")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	other, err := svc.List(ctx, "owner", "visitor")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestTimelineCreate_RequiresTitle(t *testing.T) {
	svc := NewTimelineService(&mockTimelineRepo{}, zaptest.NewLogger(t))
	_, err := svc.Create(context.Background(), "u1", models.CreateTimelineEventRequest{Title: " "})
	assert.ErrorIs(t, err, db.ErrValidation)
}
