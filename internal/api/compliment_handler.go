package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// ComplimentHandler handles compliment, feed, generation and sharing endpoints.
type ComplimentHandler struct {
	compliments core.ComplimentService
	generation  core.GenerationService
	email       core.EmailService
	logger      *zap.Logger
}

func NewComplimentHandler(compliments core.ComplimentService, generation core.GenerationService, email core.EmailService, logger *zap.Logger) *ComplimentHandler {
	return &ComplimentHandler{compliments: compliments, generation: generation, email: email, logger: logger}
}

// Generate handles POST /compliments/generate.
func (h *ComplimentHandler) Generate(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.GenerateComplimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.generation.Generate(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Catalog handles GET /compliments/styles.
func (h *ComplimentHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.generation.Catalog())
}

func (h *ComplimentHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateComplimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	compliment, err := h.compliments.Create(c.Request.Context(), uid, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, compliment)
}

func (h *ComplimentHandler) Get(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	compliment, err := h.compliments.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, compliment)
}

func (h *ComplimentHandler) Delete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.compliments.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComplimentHandler) PublicFeed(c *gin.Context) {
	limit, cursor := pageParams(c)
	page, err := h.compliments.PublicFeed(c.Request.Context(), limit, cursor)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ComplimentHandler) FollowingFeed(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, cursor := pageParams(c)
	page, err := h.compliments.FollowingFeed(c.Request.Context(), uid, limit, cursor)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ComplimentHandler) Saved(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.compliments.ListSaved(c.Request.Context(), uid)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse[models.Compliment]{Items: list})
}

func (h *ComplimentHandler) ToggleLike(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	liked, err := h.compliments.ToggleLike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Liked: liked})
}

func (h *ComplimentHandler) ToggleSave(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	saved, err := h.compliments.ToggleSave(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SaveResponse{Saved: saved})
}

func (h *ComplimentHandler) SetVisibility(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.compliments.SetVisibility(c.Request.Context(), uid, c.Param("id"), *req.IsPublic); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Visibility updated", Data: gin.H{"isPublic": *req.IsPublic}})
}

// ShareByEmail handles POST /compliments/:id/share/email.
func (h *ComplimentHandler) ShareByEmail(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ShareEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.email.ShareCompliment(c.Request.Context(), uid, c.Param("id"), req); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "Compliment sent"})
}
