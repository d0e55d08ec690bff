package db

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// collect runs q and decodes every document into T. Documents that fail to decode are
// logged and skipped. setID receives the document ID.
func collect[T any](ctx context.Context, logger *zap.Logger, op string, q firestore.Query, setID func(*T, string)) ([]T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []T{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(op, err)
		}
		var item T
		if err := doc.DataTo(&item); err != nil {
			logger.Warn("Skipping undecodable document", zap.String("op", op), zap.String("doc_id", doc.Ref.ID), zap.Error(err))
			continue
		}
		setID(&item, doc.Ref.ID)
		items = append(items, item)
	}
	return items, nil
}

// decode reads a snapshot into T and sets its ID.
func decode[T any](op string, snap *firestore.DocumentSnapshot, setID func(*T, string)) (*T, error) {
	var item T
	if err := snap.DataTo(&item); err != nil {
		return nil, newError(KindValidation, op, "failed to decode document %s: %v", snap.Ref.ID, err)
	}
	setID(&item, snap.Ref.ID)
	return &item, nil
}

// ownerOf reads a string owner field inside a transaction. A missing document is NotFound.
func ownerOf(tx *firestore.Transaction, op string, ref *firestore.DocumentRef, field string) (*firestore.DocumentSnapshot, string, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		return nil, "", classify(op, err)
	}
	v, err := snap.DataAt(field)
	if err != nil {
		return snap, "", nil
	}
	owner, _ := v.(string)
	return snap, owner, nil
}

// requireOwner runs mutate in a transaction after checking that userID owns ref.
func requireOwner(ctx context.Context, client *firestore.Client, op string, ref *firestore.DocumentRef, field, userID string, mutate func(*firestore.Transaction, *firestore.DocumentSnapshot) error) error {
	if ref == nil || userID == "" {
		return invalid(op, "document id and user id are required")
	}
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, owner, err := ownerOf(tx, op, ref, field)
		if err != nil {
			return err
		}
		if owner != userID {
			return permissionDenied(op, "user %s does not own %s", userID, ref.ID)
		}
		return mutate(tx, snap)
	})
	return classify(op, err)
}

// toggleMember flips userID's membership in a likedBy-style array and adjusts its counter
// in one transaction. It returns the membership after the write.
func toggleMember(ctx context.Context, client *firestore.Client, op string, ref *firestore.DocumentRef, setField, countField, userID string) (bool, error) {
	var member bool
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return classify(op, err)
		}
		var ids []string
		if v, err := snap.DataAt(setField); err == nil {
			ids = toStrings(v)
		}
		member = !containsID(ids, userID)
		if member {
			return tx.Update(ref, []firestore.Update{
				{Path: setField, Value: firestore.ArrayUnion(userID)},
				{Path: countField, Value: firestore.Increment(1)},
			})
		}
		return tx.Update(ref, []firestore.Update{
			{Path: setField, Value: firestore.ArrayRemove(userID)},
			{Path: countField, Value: firestore.Increment(-1)},
		})
	})
	if err != nil {
		return false, classify(op, err)
	}
	return member, nil
}

func toStrings(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
