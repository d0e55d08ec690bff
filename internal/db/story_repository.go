package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const storiesCollection = "stories"

type firestoreStoryRepository struct {
	client  *firestore.Client
	cursors *CursorCodec
	logger  *zap.Logger
}

// NewFirestoreStoryRepository creates a new StoryRepository.
func NewFirestoreStoryRepository(client *firestore.Client, cursors *CursorCodec, logger *zap.Logger) StoryRepository {
	return &firestoreStoryRepository{client: client, cursors: cursors, logger: logger}
}

func setStoryID(s *models.Story, id string) { s.ID = id }

func (r *firestoreStoryRepository) col() *firestore.CollectionRef {
	return r.client.Collection(storiesCollection)
}

func (r *firestoreStoryRepository) Create(ctx context.Context, s *models.Story) (*models.Story, error) {
	const op = "stories.Create"
	if s.AuthorID == "" || s.Content == "" {
		return nil, invalid(op, "authorId and content are required")
	}
	ref := r.col().NewDoc()
	s.ID = ref.ID
	s.LikeCount = 0
	s.LikedBy = []string{}
	s.CommentCount = 0
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, s); err != nil {
		return nil, classify(op, err)
	}
	return s, nil
}

func (r *firestoreStoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	const op = "stories.GetByID"
	if id == "" {
		return nil, invalid(op, "id cannot be empty")
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(op, err)
	}
	return decode(op, snap, setStoryID)
}

// GetPage pages all stories, newest first.
func (r *firestoreStoryRepository) GetPage(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Story], error) {
	const op = "stories.GetPage"
	if pageSize <= 0 {
		return nil, invalid(op, "page size must be positive")
	}
	after, err := r.cursors.decode(op, cursor)
	if err != nil {
		return nil, err
	}
	q := r.col().OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if after != nil {
		q = q.StartAfter(after.CreatedAt, r.col().Doc(after.ID))
	}
	items, err := collect(ctx, r.logger, op, q.Limit(pageSize+1), setStoryID)
	if err != nil {
		return nil, err
	}
	return pageOf(r.cursors, items, pageSize, func(s models.Story) (time.Time, string) { return s.CreatedAt, s.ID })
}

func (r *firestoreStoryRepository) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	const op = "stories.ToggleLike"
	if id == "" || userID == "" {
		return false, invalid(op, "id and userId are required")
	}
	return toggleMember(ctx, r.client, op, r.col().Doc(id), "likedBy", "likeCount", userID)
}

func (r *firestoreStoryRepository) Delete(ctx context.Context, id, userID string) error {
	return requireOwner(ctx, r.client, "stories.Delete", r.col().Doc(id), "authorId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			return tx.Delete(snap.Ref)
		})
}
