package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// CommentHandler serves the comment routes of one parent kind.
type CommentHandler struct {
	comments core.CommentService
	kind     models.ParentKind
	logger   *zap.Logger
}

func NewCommentHandler(comments core.CommentService, kind models.ParentKind, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, kind: kind, logger: logger}
}

func (h *CommentHandler) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.comments.List(c.Request.Context(), uid, h.kind, c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Comment]{Items: list})
}

func (h *CommentHandler) Add(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	comment, err := h.comments.Add(c.Request.Context(), uid, h.kind, c.Param("id"), req.Text)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), uid, h.kind, c.Param("id"), c.Param("commentId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
