package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

func newEmailFixture(t *testing.T) (*mockMailer, *mockComplimentRepo, *mockUserRepo, EmailService) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	m, compls, users := &mockMailer{}, &mockComplimentRepo{}, &mockUserRepo{}
	svc := NewEmailService(m, NewComplimentService(compls, users, logger), NewUserService(users, logger), logger)
	return m, compls, users, svc
}

func TestShareCompliment(t *testing.T) {
	ctx := context.Background()
	m, compls, users, svc := newEmailFixture(t)
	compls.On("GetByID", ctx, "c1").Return(&models.Compliment{ID: "c1", AuthorID: "u1", Content: "You are my favorite hello", IsPublic: true}, nil)
	users.On("GetByID", ctx, "u2").Return(&models.UserProfile{UID: "u2", DisplayName: "Juliet"}, nil)
	m.On("Send", ctx, "friend@example.com", "Juliet sent you a compliment", mock.MatchedBy(func(body string) bool {
		return strings.HasPrefix(body, "Thought of you") && strings.Contains(body, "You are my favorite hello")
	})).Return(nil)

	err := svc.ShareCompliment(ctx, "u2", "c1", models.ShareEmailRequest{To: "friend@example.com", Message: "Thought of you"})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestShareCompliment_FlattensDisplayNameInSubject(t *testing.T) {
	ctx := context.Background()
	m, compls, users, svc := newEmailFixture(t)
	compls.On("GetByID", ctx, "c1").Return(&models.Compliment{ID: "c1", AuthorID: "eve", Content: "hi", IsPublic: true}, nil)
	users.On("GetByID", ctx, "eve").Return(&models.UserProfile{UID: "eve", DisplayName: "Eve\r\nBcc: all@example.com"}, nil)
	m.On("Send", ctx, "friend@example.com", "Eve Bcc: all@example.com sent you a compliment", mock.Anything).Return(nil)

	require.NoError(t, svc.ShareCompliment(ctx, "eve", "c1", models.ShareEmailRequest{To: "friend@example.com"}))
	m.AssertExpectations(t)
}

func TestShareCompliment_PrivateDenied(t *testing.T) {
	ctx := context.Background()
	m, compls, _, svc := newEmailFixture(t)
	compls.On("GetByID", ctx, "c1").Return(&models.Compliment{ID: "c1", AuthorID: "u1", IsPublic: false}, nil)

	err := svc.ShareCompliment(ctx, "u2", "c1", models.ShareEmailRequest{To: "x@example.com"})
	assert.ErrorIs(t, err, db.ErrPermissionDenied)
	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendReminder(t *testing.T) {
	ctx := context.Background()
	m, _, _, svc := newEmailFixture(t)
	r := models.Reminder{ID: "r1", Title: "Date night", Location: "Luigi's", Date: time.Date(2024, 2, 14, 19, 30, 0, 0, time.UTC)}
	m.On("Send", ctx, "me@example.com", "Reminder: Date night", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Where: Luigi's") && strings.Contains(body, "February 14, 2024")
	})).Return(nil)

	require.NoError(t, svc.SendReminder(ctx, "me@example.com", r))
	m.AssertExpectations(t)
}
