package db

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const (
	complimentsCollection = "compliments"
	// maxInValues is the Firestore limit on values in an "in" filter.
	maxInValues = 30
)

type firestoreComplimentRepository struct {
	client  *firestore.Client
	cursors *CursorCodec
	logger  *zap.Logger
}

// NewFirestoreComplimentRepository creates a new ComplimentRepository.
func NewFirestoreComplimentRepository(client *firestore.Client, cursors *CursorCodec, logger *zap.Logger) ComplimentRepository {
	return &firestoreComplimentRepository{client: client, cursors: cursors, logger: logger}
}

func setComplimentID(c *models.Compliment, id string) { c.ID = id }

func complimentKey(c models.Compliment) (time.Time, string) { return c.CreatedAt, c.ID }

func (r *firestoreComplimentRepository) col() *firestore.CollectionRef {
	return r.client.Collection(complimentsCollection)
}

// Create stores a new compliment with an auto-generated ID. Counters start at zero.
func (r *firestoreComplimentRepository) Create(ctx context.Context, c *models.Compliment) (*models.Compliment, error) {
	const op = "compliments.Create"
	if c.AuthorID == "" || c.Content == "" {
		return nil, invalid(op, "authorId and content are required")
	}
	ref := r.col().NewDoc()
	c.ID = ref.ID
	c.LikeCount = 0
	c.LikedBy = []string{}
	c.CommentCount = 0
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, c); err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

func (r *firestoreComplimentRepository) GetByID(ctx context.Context, id string) (*models.Compliment, error) {
	const op = "compliments.GetByID"
	if id == "" {
		return nil, invalid(op, "id cannot be empty")
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(op, err)
	}
	return decode(op, snap, setComplimentID)
}

// Delete removes a compliment owned by userID.
func (r *firestoreComplimentRepository) Delete(ctx context.Context, id, userID string) error {
	return requireOwner(ctx, r.client, "compliments.Delete", r.col().Doc(id), "authorId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			return tx.Delete(snap.Ref)
		})
}

// GetByAuthor lists an author's compliments, newest first.
func (r *firestoreComplimentRepository) GetByAuthor(ctx context.Context, authorID string, publicOnly bool) ([]models.Compliment, error) {
	const op = "compliments.GetByAuthor"
	if authorID == "" {
		return nil, invalid(op, "authorId cannot be empty")
	}
	q := r.col().Where("authorId", "==", authorID)
	if publicOnly {
		q = q.Where("isPublic", "==", true)
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	return collect(ctx, r.logger, op, q, setComplimentID)
}

// GetSaved lists an author's saved compliments, most liked first then newest.
func (r *firestoreComplimentRepository) GetSaved(ctx context.Context, authorID string) ([]models.Compliment, error) {
	const op = "compliments.GetSaved"
	if authorID == "" {
		return nil, invalid(op, "authorId cannot be empty")
	}
	q := r.col().
		Where("authorId", "==", authorID).
		Where("isSaved", "==", true).
		OrderBy("likeCount", firestore.Desc).
		OrderBy("createdAt", firestore.Desc)
	return collect(ctx, r.logger, op, q, setComplimentID)
}

// ToggleLike flips userID's like and returns the committed state.
func (r *firestoreComplimentRepository) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	const op = "compliments.ToggleLike"
	if id == "" || userID == "" {
		return false, invalid(op, "id and userId are required")
	}
	return toggleMember(ctx, r.client, op, r.col().Doc(id), "likedBy", "likeCount", userID)
}

// ToggleSave flips isSaved on a compliment owned by userID and returns the committed state.
func (r *firestoreComplimentRepository) ToggleSave(ctx context.Context, id, userID string) (bool, error) {
	var saved bool
	err := requireOwner(ctx, r.client, "compliments.ToggleSave", r.col().Doc(id), "authorId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			current, _ := snap.DataAt("isSaved")
			b, _ := current.(bool)
			saved = !b
			return tx.Update(snap.Ref, []firestore.Update{{Path: "isSaved", Value: saved}})
		})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (r *firestoreComplimentRepository) SetVisibility(ctx context.Context, id, userID string, isPublic bool) error {
	return requireOwner(ctx, r.client, "compliments.SetVisibility", r.col().Doc(id), "authorId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			return tx.Update(snap.Ref, []firestore.Update{{Path: "isPublic", Value: isPublic}})
		})
}

// GetPublic pages all public compliments by createdAt desc, document ID desc.
func (r *firestoreComplimentRepository) GetPublic(ctx context.Context, pageSize int, cursor string) (*models.Page[models.Compliment], error) {
	const op = "compliments.GetPublic"
	if pageSize <= 0 {
		return nil, invalid(op, "page size must be positive")
	}
	after, err := r.cursors.decode(op, cursor)
	if err != nil {
		return nil, err
	}
	q := r.feedQuery(r.col().Where("isPublic", "==", true), after, pageSize)
	items, err := collect(ctx, r.logger, op, q, setComplimentID)
	if err != nil {
		return nil, err
	}
	return pageOf(r.cursors, items, pageSize, complimentKey)
}

// GetPublicByAuthors splits authorIDs into chunks that fit an "in" filter, queries the
// chunks concurrently and merges them into one page.
func (r *firestoreComplimentRepository) GetPublicByAuthors(ctx context.Context, authorIDs []string, pageSize int, cursor string) (*models.Page[models.Compliment], error) {
	const op = "compliments.GetPublicByAuthors"
	if pageSize <= 0 {
		return nil, invalid(op, "page size must be positive")
	}
	after, err := r.cursors.decode(op, cursor)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return &models.Page[models.Compliment]{Items: []models.Compliment{}}, nil
	}

	chunks := chunk(authorIDs, maxInValues)
	results := make([][]models.Compliment, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, ids := range chunks {
		i, ids := i, ids
		g.Go(func() error {
			base := r.col().Where("authorId", "in", ids).Where("isPublic", "==", true)
			items, err := collect(gctx, r.logger, op, r.feedQuery(base, after, pageSize), setComplimentID)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := []models.Compliment{}
	for _, items := range results {
		merged = append(merged, items...)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})
	if len(merged) > pageSize+1 {
		merged = merged[:pageSize+1]
	}
	return pageOf(r.cursors, merged, pageSize, complimentKey)
}

// feedQuery orders by createdAt desc with the document ID as tie breaker and fetches one
// extra item so the caller can tell whether another page exists.
func (r *firestoreComplimentRepository) feedQuery(q firestore.Query, after *cursorKey, pageSize int) firestore.Query {
	q = q.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if after != nil {
		q = q.StartAfter(after.CreatedAt, r.col().Doc(after.ID))
	}
	return q.Limit(pageSize + 1)
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for size < len(ids) {
		ids, out = ids[size:], append(out, ids[:size])
	}
	return append(out, ids)
}
