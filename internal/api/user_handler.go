package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/middleware"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// UserHandler handles profile and follow graph endpoints.
type UserHandler struct {
	users       core.UserService
	social      core.SocialService
	compliments core.ComplimentService
	timeline    core.TimelineService
	logger      *zap.Logger
}

func NewUserHandler(users core.UserService, social core.SocialService, compliments core.ComplimentService, timeline core.TimelineService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, social: social, compliments: compliments, timeline: timeline, logger: logger}
}

// InitializeUserProfile handles POST /users/initialize. Token claims win over body values.
func (h *UserHandler) InitializeUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.InitializeUserRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	name := firstNonEmpty(c.GetString(middleware.UserDisplayNameKey), req.DisplayName)
	photo := firstNonEmpty(c.GetString(middleware.UserPhotoURLKey), req.PhotoURL)

	user, created, err := h.users.GetOrCreate(c.Request.Context(), uid, c.GetString(middleware.UserEmailKey), name, photo)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, InitializeUserResponse{User: user, Created: created})
}

func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondProfile(c, uid)
}

// UpdateCurrentUserProfile handles PUT /users/me as a merge patch.
func (h *UserHandler) UpdateCurrentUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.users.SaveProfile(c.Request.Context(), uid, &req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateSubscription(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.users.UpdateSubscription(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.users.ListUsers(c.Request.Context(), limit)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.UserProfile]{Items: users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	h.respondProfile(c, c.Param("userId"))
}

func (h *UserHandler) respondProfile(c *gin.Context, uid string) {
	user, err := h.users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetFollowCounts(c *gin.Context) {
	counts, err := h.social.GetFollowCounts(c.Request.Context(), c.Param("userId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	users, err := h.social.GetFollowers(c.Request.Context(), c.Param("userId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.UserProfile]{Items: users})
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	users, err := h.social.GetFollowing(c.Request.Context(), c.Param("userId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.UserProfile]{Items: users})
}

func (h *UserHandler) IsFollowing(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	following, err := h.social.IsFollowing(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, FollowStateResponse{IsFollowing: following})
}

func (h *UserHandler) Follow(c *gin.Context) {
	h.setFollow(c, true)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	h.setFollow(c, false)
}

func (h *UserHandler) setFollow(c *gin.Context, follow bool) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	target := c.Param("userId")
	var err error
	if follow {
		err = h.social.Follow(c.Request.Context(), uid, target)
	} else {
		err = h.social.Unfollow(c.Request.Context(), uid, target)
	}
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, FollowStateResponse{IsFollowing: follow})
}

// ListUserCompliments handles GET /users/:userId/compliments. Only the author sees
// private entries.
func (h *UserHandler) ListUserCompliments(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.compliments.ListByAuthor(c.Request.Context(), uid, c.Param("userId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Compliment]{Items: list})
}

func (h *UserHandler) ListUserTimeline(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.timeline.List(c.Request.Context(), c.Param("userId"), uid)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.TimelineEvent]{Items: list})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
