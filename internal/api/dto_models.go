package api

import "github.com/loverprompt/loverprompt-backend/internal/models"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is used for simple acknowledgements.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeUserResponse is returned by POST /users/initialize.
type InitializeUserResponse struct {
	User    *models.UserProfile `json:"user"`
	Created bool                `json:"created"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

type FollowStateResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

// ListResponse wraps unpaged collections.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}
