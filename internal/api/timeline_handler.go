package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

type TimelineHandler struct {
	timeline core.TimelineService
	logger   *zap.Logger
}

func NewTimelineHandler(timeline core.TimelineService, logger *zap.Logger) *TimelineHandler {
	return &TimelineHandler{timeline: timeline, logger: logger}
}

func (h *TimelineHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.timeline.Create(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *TimelineHandler) Update(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.timeline.Update(c.Request.Context(), uid, c.Param("id"), &req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *TimelineHandler) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.timeline.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
