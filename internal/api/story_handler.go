package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type StoryHandler struct {
	stories core.StoryService
	logger  *zap.Logger
}

func NewStoryHandler(stories core.StoryService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{stories: stories, logger: logger}
}

func (h *StoryHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	story, err := h.stories.Create(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Feed(c *gin.Context) {
	limit, cursor := pageParams(c)
	page, err := h.stories.Feed(c.Request.Context(), limit, cursor)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StoryHandler) Get(c *gin.Context) {
	story, err := h.stories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) ToggleLike(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	liked, err := h.stories.ToggleLike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Liked: liked})
}

func (h *StoryHandler) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.stories.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
