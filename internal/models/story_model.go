package models

import "time"

// Story is a user-authored post shown in the stories feed.
type Story struct {
	ID           string    `json:"id" firestore:"-"`
	AuthorID     string    `json:"authorId" firestore:"authorId"`
	AuthorName   string    `json:"authorName" firestore:"authorName"`
	AuthorPhoto  string    `json:"authorPhoto,omitempty" firestore:"authorPhoto,omitempty"`
	Content      string    `json:"content" firestore:"content"`
	LikeCount    int       `json:"likeCount" firestore:"likeCount"`
	LikedBy      []string  `json:"likedBy" firestore:"likedBy"`
	CommentCount int       `json:"commentCount" firestore:"commentCount"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}

// LikedByUser reports whether userID is in LikedBy.
func (s *Story) LikedByUser(userID string) bool {
	return contains(s.LikedBy, userID)
}
