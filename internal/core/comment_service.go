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

type commentService struct {
	commentRepo    db.CommentRepository
	complimentRepo db.ComplimentRepository
	userRepo       db.UserRepository
	logger         *zap.Logger
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(commentRepo db.CommentRepository, complimentRepo db.ComplimentRepository, userRepo db.UserRepository, logger *zap.Logger) CommentService {
	return &commentService{commentRepo: commentRepo, complimentRepo: complimentRepo, userRepo: userRepo, logger: logger}
}

// readable rejects comments on private compliments the viewer does not own.
// Stories are always public.
func (s *commentService) readable(ctx context.Context, op, viewerID string, kind models.ParentKind, parentID string) error {
	if kind != models.ParentCompliment {
		return nil
	}
	c, err := s.complimentRepo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if !c.IsPublic && c.AuthorID != viewerID {
		return denied(op, "compliment %s is private", parentID)
	}
	return nil
}

func (s *commentService) Add(ctx context.Context, userID string, kind models.ParentKind, parentID, text string) (*models.Comment, error) {
	const op = "comments.Add"
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid(op, errors.New("text cannot be empty"))
	}
	if err := s.readable(ctx, op, userID, kind, parentID); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment author '%s': %w", userID, err)
	}
	c, err := s.commentRepo.Add(ctx, kind, parentID, &models.Comment{
		AuthorID:    userID,
		AuthorName:  author.DisplayName,
		AuthorPhoto: author.PhotoURL,
		Text:        text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, viewerID string, kind models.ParentKind, parentID string) ([]models.Comment, error) {
	if err := s.readable(ctx, "comments.List", viewerID, kind, parentID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	list, err := s.commentRepo.List(ctx, kind, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return list, nil
}

func (s *commentService) Delete(ctx context.Context, userID string, kind models.ParentKind, parentID, commentID string) error {
	if err := s.commentRepo.Delete(ctx, kind, parentID, commentID, userID); err != nil {
		return fmt.Errorf("failed to delete comment '%s': %w", commentID, err)
	}
	return nil
}
