package models

import "time"

// Subscription tiers.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Preferences holds per-user UI preferences.
type Preferences struct {
	DarkMode bool   `json:"darkMode" firestore:"darkMode"`
	Language string `json:"language" firestore:"language"`
}

// DefaultPreferences returns the preferences applied when a profile has none.
func DefaultPreferences() Preferences {
	return Preferences{DarkMode: false, Language: "en"}
}

// Subscription describes the user's plan.
type Subscription struct {
	Tier      string     `json:"tier" firestore:"tier"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" firestore:"expiresAt,omitempty"`
}

// Active reports whether the subscription grants premium features at t.
func (s Subscription) Active(t time.Time) bool {
	if s.Tier != TierPremium {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(t)
}

// UserProfile represents a user in the system. The document ID is the Firebase Auth UID.
type UserProfile struct {
	UID            string        `json:"uid" firestore:"-"`
	DisplayName    string        `json:"displayName" firestore:"displayName"`
	Email          string        `json:"email" firestore:"email"`
	PhotoURL       string        `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	BannerURL      string        `json:"bannerURL,omitempty" firestore:"bannerURL,omitempty"`
	Bio            string        `json:"bio,omitempty" firestore:"bio,omitempty"`
	Location       string        `json:"location,omitempty" firestore:"location,omitempty"`
	Preferences    *Preferences  `json:"preferences,omitempty" firestore:"preferences,omitempty"`
	Subscription   *Subscription `json:"subscription,omitempty" firestore:"subscription,omitempty"`
	FollowersCount int           `json:"followersCount" firestore:"followersCount"`
	FollowingCount int           `json:"followingCount" firestore:"followingCount"`
	Followers      []string      `json:"-" firestore:"followers"`
	Following      []string      `json:"-" firestore:"following"`
	CreatedAt      time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

// ApplyDefaults fills fields that older documents may lack.
func (u *UserProfile) ApplyDefaults() {
	if u.Preferences == nil {
		p := DefaultPreferences()
		u.Preferences = &p
	}
	if u.Preferences.Language == "" {
		u.Preferences.Language = DefaultPreferences().Language
	}
	if u.Subscription == nil {
		u.Subscription = &Subscription{Tier: TierFree}
	}
	if u.Subscription.Tier == "" {
		u.Subscription.Tier = TierFree
	}
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
}

// IsPremium reports whether the user currently has premium features.
func (u *UserProfile) IsPremium(now time.Time) bool {
	return u.Subscription != nil && u.Subscription.Active(now)
}

// FollowCounts summarises a user's follow relationships.
type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
