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

func TestSocial_IsFollowingAndCounts(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	svc := NewSocialService(users, zaptest.NewLogger(t))
	users.On("GetByID", ctx, "a").Return(&models.UserProfile{UID: "a", Following: []string{"b"}, FollowingCount: 1, FollowersCount: 3}, nil)

	yes, err := svc.IsFollowing(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, yes)
	no, err := svc.IsFollowing(ctx, "a", "c")
	require.NoError(t, err)
	assert.False(t, no)

	counts, err := svc.GetFollowCounts(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.FollowCounts{Followers: 3, Following: 1}, *counts)
}

func TestSocial_GetFollowingKeepsOrderAndSkipsMissing(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	svc := NewSocialService(users, zaptest.NewLogger(t))
	ids := []string{"z", "gone", "m"}
	users.On("GetByID", ctx, "a").Return(&models.UserProfile{UID: "a", Following: ids}, nil)
	users.On("GetByIDs", ctx, ids).Return([]models.UserProfile{{UID: "m"}, {UID: "z"}}, nil)

	got, err := svc.GetFollowing(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "z", got[0].UID)
	assert.Equal(t, "m", got[1].UID)
}

func TestSocial_FollowPropagatesKinds(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	svc := NewSocialService(users, zaptest.NewLogger(t))
	users.On("Follow", ctx, "a", "a").Return(false, db.ErrValidation)
	users.On("Follow", ctx, "a", "ghost").Return(false, db.ErrNotFound)

	assert.ErrorIs(t, svc.Follow(ctx, "a", "a"), db.ErrValidation)
	assert.ErrorIs(t, svc.Follow(ctx, "a", "ghost"), db.ErrNotFound)
}
