package models

// Page is one page of a cursor-paginated listing.
// NextCursor is empty when there is no further data.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}
