package models

import "time"

// Compliment is a short AI-generated or user-authored text tied to an author.
type Compliment struct {
	ID            string    `json:"id" firestore:"-"`
	AuthorID      string    `json:"authorId" firestore:"authorId"`
	AuthorName    string    `json:"authorName,omitempty" firestore:"authorName,omitempty"`
	Content       string    `json:"content" firestore:"content"`
	Style         string    `json:"style,omitempty" firestore:"style,omitempty"`
	Tone          string    `json:"tone,omitempty" firestore:"tone,omitempty"`
	Mood          string    `json:"mood,omitempty" firestore:"mood,omitempty"`
	RecipientName string    `json:"recipientName,omitempty" firestore:"recipientName,omitempty"`
	IsPublic      bool      `json:"isPublic" firestore:"isPublic"`
	IsSaved       bool      `json:"isSaved" firestore:"isSaved"`
	LikeCount     int       `json:"likeCount" firestore:"likeCount"`
	LikedBy       []string  `json:"likedBy" firestore:"likedBy"`
	CommentCount  int       `json:"commentCount" firestore:"commentCount"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// LikedByUser reports whether userID is in LikedBy.
func (c *Compliment) LikedByUser(userID string) bool {
	return contains(c.LikedBy, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
