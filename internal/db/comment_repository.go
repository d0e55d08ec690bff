package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const commentsCollection = "comments"

type firestoreCommentRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreCommentRepository creates a CommentRepository over the comments
// subcollection of compliments and stories.
func NewFirestoreCommentRepository(client *firestore.Client, logger *zap.Logger) CommentRepository {
	return &firestoreCommentRepository{client: client, logger: logger}
}

func (r *firestoreCommentRepository) parent(op string, kind models.ParentKind, parentID string) (*firestore.DocumentRef, error) {
	if parentID == "" {
		return nil, invalid(op, "parent id cannot be empty")
	}
	switch kind {
	case models.ParentCompliment, models.ParentStory:
		return r.client.Collection(string(kind)).Doc(parentID), nil
	default:
		return nil, invalid(op, "unknown parent kind %q", kind)
	}
}

// Add creates a comment and increments the parent's commentCount in one transaction.
// A missing parent is NotFound.
func (r *firestoreCommentRepository) Add(ctx context.Context, kind models.ParentKind, parentID string, c *models.Comment) (*models.Comment, error) {
	const op = "comments.Add"
	parentRef, err := r.parent(op, kind, parentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID == "" || c.Text == "" {
		return nil, invalid(op, "authorId and text are required")
	}
	ref := parentRef.Collection(commentsCollection).NewDoc()
	c.ID = ref.ID
	c.ParentID = parentID
	c.ParentKind = kind
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(parentRef); err != nil {
			return classify(op, err)
		}
		if err := tx.Create(ref, c); err != nil {
			return err
		}
		return tx.Update(parentRef, []firestore.Update{{Path: "commentCount", Value: firestore.Increment(1)}})
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

// List returns a parent's comments, oldest first.
func (r *firestoreCommentRepository) List(ctx context.Context, kind models.ParentKind, parentID string) ([]models.Comment, error) {
	const op = "comments.List"
	parentRef, err := r.parent(op, kind, parentID)
	if err != nil {
		return nil, err
	}
	q := parentRef.Collection(commentsCollection).OrderBy("createdAt", firestore.Asc)
	return collect(ctx, r.logger, op, q, func(c *models.Comment, id string) {
		c.ID = id
		c.ParentKind = kind
	})
}

// Delete removes a comment written by userID and decrements the parent's commentCount.
func (r *firestoreCommentRepository) Delete(ctx context.Context, kind models.ParentKind, parentID, commentID, userID string) error {
	const op = "comments.Delete"
	parentRef, err := r.parent(op, kind, parentID)
	if err != nil {
		return err
	}
	if commentID == "" {
		return invalid(op, "comment id cannot be empty")
	}
	ref := parentRef.Collection(commentsCollection).Doc(commentID)
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, author, err := ownerOf(tx, op, ref, "authorId")
		if err != nil {
			return err
		}
		if author != userID {
			return permissionDenied(op, "user %s did not write comment %s", userID, commentID)
		}
		parentExists := true
		if _, err := tx.Get(parentRef); err != nil {
			if KindOf(classify(op, err)) != KindNotFound {
				return classify(op, err)
			}
			parentExists = false
		}
		if err := tx.Delete(ref); err != nil {
			return err
		}
		if !parentExists {
			return nil
		}
		return tx.Update(parentRef, []firestore.Update{{Path: "commentCount", Value: firestore.Increment(-1)}})
	})
	return classify(op, err)
}
