package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// ReminderHandler serves the caller's reminders.
type ReminderHandler struct {
	reminders core.ReminderService
	logger    *zap.Logger
}

func NewReminderHandler(reminders core.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, logger: logger}
}

func (h *ReminderHandler) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.reminders.List(c.Request.Context(), uid)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Reminder]{Items: list})
}

func (h *ReminderHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := h.reminders.Create(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	r, err := h.reminders.Update(c.Request.Context(), uid, c.Param("id"), &req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
