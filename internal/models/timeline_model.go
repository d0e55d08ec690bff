package models

import "time"

// TimelineEvent is a milestone on a user's relationship timeline.
type TimelineEvent struct {
	ID          string    `json:"id" firestore:"-"`
	UserID      string    `json:"userId" firestore:"userId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Date        time.Time `json:"date" firestore:"date"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	ImageURL    string    `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
	IsPublic    bool      `json:"isPublic" firestore:"isPublic"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}
