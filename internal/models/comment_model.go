package models

import "time"

// ParentKind names the collection a comment hangs under.
type ParentKind string

const (
	ParentCompliment ParentKind = "compliments"
	ParentStory      ParentKind = "stories"
)

// Comment is a child of a Compliment or Story.
type Comment struct {
	ID          string     `json:"id" firestore:"-"`
	ParentKind  ParentKind `json:"parentKind" firestore:"-"`
	ParentID    string     `json:"parentId" firestore:"parentId"`
	AuthorID    string     `json:"authorId" firestore:"authorId"`
	AuthorName  string     `json:"authorName" firestore:"authorName"`
	AuthorPhoto string     `json:"authorPhoto,omitempty" firestore:"authorPhoto,omitempty"`
	Text        string     `json:"text" firestore:"text"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
}
