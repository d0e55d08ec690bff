package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loverprompt/loverprompt-backend/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements UserRepository using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreUserRepository creates a new UserRepository.
func NewFirestoreUserRepository(client *firestore.Client, logger *zap.Logger) UserRepository {
	return &firestoreUserRepository{client: client, logger: logger}
}

func setUserID(u *models.UserProfile, id string) { u.UID = id }

func (r *firestoreUserRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

// GetByID retrieves a profile by Firebase Auth UID.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	const op = "users.GetByID"
	if uid == "" {
		return nil, invalid(op, "uid cannot be empty")
	}
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		return nil, classify(op, err)
	}
	u, err := decode(op, snap, setUserID)
	if err != nil {
		return nil, err
	}
	u.ApplyDefaults()
	return u, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, uids []string) ([]models.UserProfile, error) {
	const op = "users.GetByIDs"
	if len(uids) == 0 {
		return []models.UserProfile{}, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(uids))
	for _, id := range uids {
		refs = append(refs, r.doc(id))
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, classify(op, err)
	}
	users := make([]models.UserProfile, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		u, err := decode(op, snap, setUserID)
		if err != nil {
			r.logger.Warn("Skipping undecodable user", zap.String("uid", snap.Ref.ID), zap.Error(err))
			continue
		}
		u.ApplyDefaults()
		users = append(users, *u)
	}
	return users, nil
}

// GetOrCreate returns the profile for uid, creating it with defaults on first sign-in.
// The boolean reports whether the profile was created.
func (r *firestoreUserRepository) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.UserProfile, bool, error) {
	const op = "users.GetOrCreate"
	if uid == "" {
		return nil, false, invalid(op, "uid cannot be empty")
	}
	ref := r.doc(uid)
	var (
		user    *models.UserProfile
		created bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = false
		snap, err := tx.Get(ref)
		if err == nil {
			user, err = decode(op, snap, setUserID)
			return err
		}
		if status.Code(err) != codes.NotFound {
			return err
		}
		now := time.Now().UTC()
		prefs := models.DefaultPreferences()
		user = &models.UserProfile{
			UID:          uid,
			DisplayName:  displayName,
			Email:        email,
			PhotoURL:     photoURL,
			Preferences:  &prefs,
			Subscription: &models.Subscription{Tier: models.TierFree},
			Followers:    []string{},
			Following:    []string{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		created = true
		return tx.Create(ref, user)
	})
	if err != nil {
		return nil, false, classify(op, err)
	}
	user.ApplyDefaults()
	return user, created, nil
}

// Save merge-upserts only the fields set in patch, then re-reads the stored profile.
func (r *firestoreUserRepository) Save(ctx context.Context, uid string, patch *models.UpdateProfileRequest) (*models.UserProfile, error) {
	const op = "users.Save"
	if uid == "" {
		return nil, invalid(op, "uid cannot be empty")
	}
	ref := r.doc(uid)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		exists := err == nil
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		now := time.Now().UTC()
		data := map[string]interface{}{"updatedAt": now}
		if patch != nil {
			setIf(data, "displayName", patch.DisplayName)
			setIf(data, "photoURL", patch.PhotoURL)
			setIf(data, "bannerURL", patch.BannerURL)
			setIf(data, "bio", patch.Bio)
			setIf(data, "location", patch.Location)
		}
		// MergeAll merges nested maps leaf by leaf, so unset preference keys keep their stored value.
		prefs := map[string]interface{}{}
		if patch != nil && patch.Preferences != nil {
			if patch.Preferences.DarkMode != nil {
				prefs["darkMode"] = *patch.Preferences.DarkMode
			}
			if patch.Preferences.Language != nil {
				prefs["language"] = *patch.Preferences.Language
			}
		}
		if !exists {
			data["createdAt"] = now
			data["followers"] = []string{}
			data["following"] = []string{}
			data["followersCount"] = 0
			data["followingCount"] = 0
			data["subscription"] = map[string]interface{}{"tier": models.TierFree}
			d := models.DefaultPreferences()
			if _, ok := prefs["darkMode"]; !ok {
				prefs["darkMode"] = d.DarkMode
			}
			if _, ok := prefs["language"]; !ok {
				prefs["language"] = d.Language
			}
		}
		if len(prefs) > 0 {
			data["preferences"] = prefs
		}
		return tx.Set(ref, data, firestore.MergeAll)
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return r.GetByID(ctx, uid)
}

func setIf(data map[string]interface{}, key string, v *string) {
	if v != nil {
		data[key] = *v
	}
}

// GetAll lists profiles ordered by display name.
func (r *firestoreUserRepository) GetAll(ctx context.Context, limit int) ([]models.UserProfile, error) {
	const op = "users.GetAll"
	q := r.client.Collection(usersCollection).OrderBy("displayName", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	users, err := collect(ctx, r.logger, op, q, setUserID)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].ApplyDefaults()
	}
	return users, nil
}

func (r *firestoreUserRepository) UpdateSubscription(ctx context.Context, uid string, sub models.Subscription) (*models.UserProfile, error) {
	const op = "users.UpdateSubscription"
	if sub.Tier != models.TierFree && sub.Tier != models.TierPremium {
		return nil, invalid(op, "unknown tier %q", sub.Tier)
	}
	value := map[string]interface{}{"tier": sub.Tier}
	if sub.ExpiresAt != nil {
		value["expiresAt"] = sub.ExpiresAt.UTC()
	}
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "subscription", Value: value},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return r.GetByID(ctx, uid)
}

// Follow adds targetID to followerID's following set and followerID to targetID's
// followers set, adjusting both counters in the same transaction.
func (r *firestoreUserRepository) Follow(ctx context.Context, followerID, targetID string) (bool, error) {
	return r.setFollow(ctx, "users.Follow", followerID, targetID, true)
}

// Unfollow is the inverse of Follow. Unfollowing a user that is not followed is a no-op.
func (r *firestoreUserRepository) Unfollow(ctx context.Context, followerID, targetID string) (bool, error) {
	return r.setFollow(ctx, "users.Unfollow", followerID, targetID, false)
}

func (r *firestoreUserRepository) setFollow(ctx context.Context, op, followerID, targetID string, follow bool) (bool, error) {
	if followerID == "" || targetID == "" {
		return false, invalid(op, "user ids cannot be empty")
	}
	if followerID == targetID {
		return false, invalid(op, "users cannot follow themselves")
	}
	followerRef, targetRef := r.doc(followerID), r.doc(targetID)

	var changed bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = false
		followerSnap, err := tx.Get(followerRef)
		if err != nil {
			return classify(op, err)
		}
		if _, err := tx.Get(targetRef); err != nil {
			return classify(op, err)
		}
		follower, err := decode(op, followerSnap, setUserID)
		if err != nil {
			return err
		}
		if containsID(follower.Following, targetID) == follow {
			return nil
		}
		changed = true

		delta := 1
		var followingOp, followersOp interface{} = firestore.ArrayUnion(targetID), firestore.ArrayUnion(followerID)
		if !follow {
			delta = -1
			followingOp, followersOp = firestore.ArrayRemove(targetID), firestore.ArrayRemove(followerID)
		}
		now := time.Now().UTC()
		if err := tx.Update(followerRef, []firestore.Update{
			{Path: "following", Value: followingOp},
			{Path: "followingCount", Value: firestore.Increment(delta)},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		return tx.Update(targetRef, []firestore.Update{
			{Path: "followers", Value: followersOp},
			{Path: "followersCount", Value: firestore.Increment(delta)},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		return false, classify(op, err)
	}
	return changed, nil
}
