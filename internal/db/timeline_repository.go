package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const timelineCollection = "timelineEvents"

type firestoreTimelineRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreTimelineRepository creates a new TimelineRepository.
func NewFirestoreTimelineRepository(client *firestore.Client, logger *zap.Logger) TimelineRepository {
	return &firestoreTimelineRepository{client: client, logger: logger}
}

func setEventID(e *models.TimelineEvent, id string) { e.ID = id }

func (r *firestoreTimelineRepository) col() *firestore.CollectionRef {
	return r.client.Collection(timelineCollection)
}

func (r *firestoreTimelineRepository) Create(ctx context.Context, e *models.TimelineEvent) (*models.TimelineEvent, error) {
	const op = "timeline.Create"
	if e.UserID == "" || e.Title == "" || e.Date.IsZero() {
		return nil, invalid(op, "userId, title and date are required")
	}
	ref := r.col().NewDoc()
	e.ID = ref.ID
	e.Date = e.Date.UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, e); err != nil {
		return nil, classify(op, err)
	}
	return e, nil
}

// GetByUser lists a user's events by date descending.
func (r *firestoreTimelineRepository) GetByUser(ctx context.Context, userID string, publicOnly bool) ([]models.TimelineEvent, error) {
	const op = "timeline.GetByUser"
	if userID == "" {
		return nil, invalid(op, "userId cannot be empty")
	}
	q := r.col().Where("userId", "==", userID)
	if publicOnly {
		q = q.Where("isPublic", "==", true)
	}
	return collect(ctx, r.logger, op, q.OrderBy("date", firestore.Desc), setEventID)
}

func (r *firestoreTimelineRepository) Update(ctx context.Context, id, userID string, patch *models.UpdateTimelineEventRequest) (*models.TimelineEvent, error) {
	const op = "timeline.Update"
	var updated *models.TimelineEvent
	err := requireOwner(ctx, r.client, op, r.col().Doc(id), "userId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			e, err := decode(op, snap, setEventID)
			if err != nil {
				return err
			}
			var updates []firestore.Update
			if patch.Title != nil {
				if *patch.Title == "" {
					return invalid(op, "title cannot be empty")
				}
				e.Title = *patch.Title
				updates = append(updates, firestore.Update{Path: "title", Value: e.Title})
			}
			if patch.Description != nil {
				e.Description = *patch.Description
				updates = append(updates, firestore.Update{Path: "description", Value: e.Description})
			}
			if patch.Date != nil {
				e.Date = patch.Date.UTC()
				updates = append(updates, firestore.Update{Path: "date", Value: e.Date})
			}
			if patch.Location != nil {
				e.Location = *patch.Location
				updates = append(updates, firestore.Update{Path: "location", Value: e.Location})
			}
			if patch.ImageURL != nil {
				e.ImageURL = *patch.ImageURL
				updates = append(updates, firestore.Update{Path: "imageURL", Value: e.ImageURL})
			}
			if patch.IsPublic != nil {
				e.IsPublic = *patch.IsPublic
				updates = append(updates, firestore.Update{Path: "isPublic", Value: e.IsPublic})
			}
			updated = e
			if len(updates) == 0 {
				return nil
			}
			return tx.Update(snap.Ref, updates)
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *firestoreTimelineRepository) Delete(ctx context.Context, id, userID string) error {
	return requireOwner(ctx, r.client, "timeline.Delete", r.col().Doc(id), "userId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			return tx.Delete(snap.Ref)
		})
}
