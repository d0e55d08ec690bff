package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const remindersCollection = "reminders"

type firestoreReminderRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreReminderRepository creates a new ReminderRepository.
func NewFirestoreReminderRepository(client *firestore.Client, logger *zap.Logger) ReminderRepository {
	return &firestoreReminderRepository{client: client, logger: logger}
}

func setReminderID(r *models.Reminder, id string) { r.ID = id }

func (r *firestoreReminderRepository) col() *firestore.CollectionRef {
	return r.client.Collection(remindersCollection)
}

func (r *firestoreReminderRepository) Create(ctx context.Context, rem *models.Reminder) (*models.Reminder, error) {
	const op = "reminders.Create"
	if rem.UserID == "" || rem.Title == "" || rem.Date.IsZero() {
		return nil, invalid(op, "userId, title and date are required")
	}
	ref := r.col().NewDoc()
	rem.ID = ref.ID
	rem.ReminderSent = false
	rem.Date = rem.Date.UTC()
	if rem.CreatedAt.IsZero() {
		rem.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, rem); err != nil {
		return nil, classify(op, err)
	}
	return rem, nil
}

// GetByUser lists a user's reminders by date ascending.
func (r *firestoreReminderRepository) GetByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	const op = "reminders.GetByUser"
	if userID == "" {
		return nil, invalid(op, "userId cannot be empty")
	}
	q := r.col().Where("userId", "==", userID).OrderBy("date", firestore.Asc)
	return collect(ctx, r.logger, op, q, setReminderID)
}

// Update applies patch to a reminder owned by userID. Moving the date re-arms the reminder.
func (r *firestoreReminderRepository) Update(ctx context.Context, id, userID string, patch *models.UpdateReminderRequest) (*models.Reminder, error) {
	const op = "reminders.Update"
	var updated *models.Reminder
	err := requireOwner(ctx, r.client, op, r.col().Doc(id), "userId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			rem, err := decode(op, snap, setReminderID)
			if err != nil {
				return err
			}
			var updates []firestore.Update
			if patch.Title != nil {
				if *patch.Title == "" {
					return invalid(op, "title cannot be empty")
				}
				rem.Title = *patch.Title
				updates = append(updates, firestore.Update{Path: "title", Value: rem.Title})
			}
			if patch.Description != nil {
				rem.Description = *patch.Description
				updates = append(updates, firestore.Update{Path: "description", Value: rem.Description})
			}
			if patch.Location != nil {
				rem.Location = *patch.Location
				updates = append(updates, firestore.Update{Path: "location", Value: rem.Location})
			}
			if patch.Date != nil {
				rem.Date = patch.Date.UTC()
				rem.ReminderSent = false
				rem.DeliveryError = ""
				updates = append(updates,
					firestore.Update{Path: "date", Value: rem.Date},
					firestore.Update{Path: "reminderSent", Value: false},
					firestore.Update{Path: "deliveryError", Value: firestore.Delete})
			}
			updated = rem
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

func (r *firestoreReminderRepository) Delete(ctx context.Context, id, userID string) error {
	return requireOwner(ctx, r.client, "reminders.Delete", r.col().Doc(id), "userId", userID,
		func(tx *firestore.Transaction, snap *firestore.DocumentSnapshot) error {
			return tx.Delete(snap.Ref)
		})
}

// GetDue returns unsent reminders dated at or before now, oldest first, starting after
// the given reminder when one is passed.
func (r *firestoreReminderRepository) GetDue(ctx context.Context, now time.Time, after *models.Reminder, limit int) ([]models.Reminder, error) {
	const op = "reminders.GetDue"
	q := r.col().
		Where("reminderSent", "==", false).
		Where("date", "<=", now.UTC()).
		OrderBy("date", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if after != nil {
		q = q.StartAfter(after.Date.UTC(), r.col().Doc(after.ID))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return collect(ctx, r.logger, op, q, setReminderID)
}

func (r *firestoreReminderRepository) MarkSent(ctx context.Context, id string) error {
	const op = "reminders.MarkSent"
	if id == "" {
		return invalid(op, "id cannot be empty")
	}
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{{Path: "reminderSent", Value: true}})
	return classify(op, err)
}

// MarkFailed retires a reminder that can never be delivered so it leaves the due queue.
func (r *firestoreReminderRepository) MarkFailed(ctx context.Context, id, reason string) error {
	const op = "reminders.MarkFailed"
	if id == "" {
		return invalid(op, "id cannot be empty")
	}
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "reminderSent", Value: true},
		{Path: "deliveryError", Value: reason},
	})
	return classify(op, err)
}
