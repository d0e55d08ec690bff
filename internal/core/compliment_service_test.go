package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

func newComplimentFixture(t *testing.T) (*mockComplimentRepo, *mockUserRepo, ComplimentService) {
	t.Helper()
	compls, users := &mockComplimentRepo{}, &mockUserRepo{}
	return compls, users, NewComplimentService(compls, users, zaptest.NewLogger(t))
}

func TestComplimentGet_PrivateHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	compls, _, svc := newComplimentFixture(t)
	compls.On("GetByID", ctx, "c1").Return(&models.Compliment{ID: "c1", AuthorID: "owner", IsPublic: false}, nil)

	_, err := svc.Get(ctx, "stranger", "c1")
	assert.ErrorIs(t, err, db.ErrPermissionDenied)

	c, err := svc.Get(ctx, "owner", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
}

func TestComplimentToggleLike(t *testing.T) {
	ctx := context.Background()
	compls, _, svc := newComplimentFixture(t)
	compls.On("GetByID", ctx, "c1").Return(&models.Compliment{ID: "c1", AuthorID: "u1", IsPublic: true}, nil)
	compls.On("ToggleLike", ctx, "c1", "u2").Return(true, nil)

	liked, err := svc.ToggleLike(ctx, "u2", "c1")
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestComplimentListByAuthor_PublicOnlyForOthers(t *testing.T) {
	ctx := context.Background()
	compls, _, svc := newComplimentFixture(t)
	compls.On("GetByAuthor", ctx, "a", true).Return([]models.Compliment{}, nil).Once()
	compls.On("GetByAuthor", ctx, "a", false).Return([]models.Compliment{{ID: "x"}}, nil).Once()

	list, err := svc.ListByAuthor(ctx, "b", "a")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.ListByAuthor(ctx, "a", "a")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	compls.AssertExpectations(t)
}

func TestComplimentFeeds_ClampPageSize(t *testing.T) {
	ctx := context.Background()
	compls, users, svc := newComplimentFixture(t)
	empty := &models.Page[models.Compliment]{Items: []models.Compliment{}}
	compls.On("GetPublic", ctx, defaultPageSize, "").Return(empty, nil)
	compls.On("GetPublic", ctx, maxPageSize, "cur").Return(empty, nil)

	following := []string{"f1", "f2"}
	users.On("GetByID", ctx, "me").Return(&models.UserProfile{UID: "me", Following: following}, nil)
	compls.On("GetPublicByAuthors", ctx, following, 5, "").Return(empty, nil)

	_, err := svc.PublicFeed(ctx, 0, "")
	require.NoError(t, err)
	_, err = svc.PublicFeed(ctx, 500, "cur")
	require.NoError(t, err)
	_, err = svc.FollowingFeed(ctx, "me", 5, "")
	require.NoError(t, err)
	compls.AssertExpectations(t)
}

func TestComplimentCreate_FillsAuthorName(t *testing.T) {
	ctx := context.Background()
	compls, users, svc := newComplimentFixture(t)
	users.On("GetByID", ctx, "u1").Return(&models.UserProfile{UID: "u1", DisplayName: "Romeo"}, nil)
	compls.On("Create", ctx, &models.Compliment{AuthorID: "u1", AuthorName: "Romeo", Content: "You light up every room", Tone: "romantic", Mood: "sincere", IsPublic: true}).
		Return(&models.Compliment{ID: "c1"}, nil)

	c, err := svc.Create(ctx, "u1", models.CreateComplimentRequest{Content: " You light up every room ", Tone: "romantic", Mood: "sincere", IsPublic: true})
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
}
