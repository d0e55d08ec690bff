package models

import "time"

// InitializeUserRequest carries optional profile data sent on first sign-in.
// Values from the verified token take precedence when present.
type InitializeUserRequest struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UpdateProfileRequest is a merge patch for a profile. Nil fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName *string      `json:"displayName"`
	PhotoURL    *string      `json:"photoURL"`
	BannerURL   *string      `json:"bannerURL"`
	Bio         *string      `json:"bio"`
	Location    *string      `json:"location"`
	Preferences *PreferencesPatch `json:"preferences"`
}

// PreferencesPatch updates individual preference fields. Nil fields keep their stored value.
type PreferencesPatch struct {
	DarkMode *bool   `json:"darkMode"`
	Language *string `json:"language"`
}

// UpdateSubscriptionRequest sets the caller's plan.
type UpdateSubscriptionRequest struct {
	Tier      string     `json:"tier" binding:"required,oneof=free premium"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// GenerateComplimentRequest asks the text generator for a compliment.
type GenerateComplimentRequest struct {
	Text          string `json:"text" binding:"required,max=500"`
	Style         string `json:"style" binding:"required"`
	Tone          string `json:"tone" binding:"required"`
	Mood          string `json:"mood"`
	RecipientName string `json:"recipientName" binding:"max=80"`
	// Save persists the generated text as a private compliment.
	Save bool `json:"save"`
}

// GenerateComplimentResponse is returned by the generate endpoint.
type GenerateComplimentResponse struct {
	Content    string      `json:"content"`
	Compliment *Compliment `json:"compliment,omitempty"`
}

// CreateComplimentRequest stores a compliment authored by the caller.
type CreateComplimentRequest struct {
	Content       string `json:"content" binding:"required,max=2000"`
	Style         string `json:"style"`
	Tone          string `json:"tone"`
	Mood          string `json:"mood"`
	RecipientName string `json:"recipientName" binding:"max=80"`
	IsPublic      bool   `json:"isPublic"`
}

// VisibilityRequest toggles a compliment between public and private.
type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// ShareEmailRequest emails a compliment to an address.
type ShareEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Message string `json:"message" binding:"max=500"`
}

// CreateCommentRequest adds a comment to a compliment or story.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}

// CreateStoryRequest publishes a story.
type CreateStoryRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// CreateReminderRequest creates a reminder.
type CreateReminderRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"max=200"`
}

// UpdateReminderRequest is a merge patch for a reminder. Changing the date re-arms the reminder.
type UpdateReminderRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
}

// CreateTimelineEventRequest creates a timeline event.
type CreateTimelineEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"max=200"`
	ImageURL    string    `json:"imageURL" binding:"omitempty,url"`
	IsPublic    bool      `json:"isPublic"`
}

// UpdateTimelineEventRequest is a merge patch for a timeline event.
type UpdateTimelineEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	ImageURL    *string    `json:"imageURL"`
	IsPublic    *bool      `json:"isPublic"`
}
