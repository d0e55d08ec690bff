package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/middleware"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// Services bundles the core services the API depends on.
type Services struct {
	Users       core.UserService
	Social      core.SocialService
	Compliments core.ComplimentService
	Comments    core.CommentService
	Stories     core.StoryService
	Reminders   core.ReminderService
	Timeline    core.TimelineService
	Generation  core.GenerationService
	Email       core.EmailService
}

// SetupRoutes registers /health and every /api/v1 route. Global middleware (request id,
// logging, recovery, CORS, timeout) is expected on router already.
func SetupRoutes(router *gin.Engine, svc Services, verifier middleware.TokenVerifier, logger *zap.Logger) {
	authMW := middleware.Auth(verifier, logger)

	userHandler := NewUserHandler(svc.Users, svc.Social, svc.Compliments, svc.Timeline, logger)
	complimentHandler := NewComplimentHandler(svc.Compliments, svc.Generation, svc.Email, logger)
	complimentComments := NewCommentHandler(svc.Comments, models.ParentCompliment, logger)
	storyComments := NewCommentHandler(svc.Comments, models.ParentStory, logger)
	storyHandler := NewStoryHandler(svc.Stories, logger)
	reminderHandler := NewReminderHandler(svc.Reminders, logger)
	timelineHandler := NewTimelineHandler(svc.Timeline, logger)

	apiV1 := router.Group("/api/v1", authMW)
	{
		users := apiV1.Group("/users")
		{
			users.POST("/initialize", userHandler.InitializeUserProfile)
			users.GET("", userHandler.ListUsers)
			users.GET("/me", userHandler.GetCurrentUserProfile)
			users.PUT("/me", userHandler.UpdateCurrentUserProfile)
			users.PUT("/me/subscription", userHandler.UpdateSubscription)
			users.GET("/:userId", userHandler.GetUser)
			users.GET("/:userId/follow-counts", userHandler.GetFollowCounts)
			users.GET("/:userId/followers", userHandler.GetFollowers)
			users.GET("/:userId/following", userHandler.GetFollowing)
			users.GET("/:userId/is-following", userHandler.IsFollowing)
			users.POST("/:userId/follow", userHandler.Follow)
			users.DELETE("/:userId/follow", userHandler.Unfollow)
			users.GET("/:userId/compliments", userHandler.ListUserCompliments)
			users.GET("/:userId/timeline", userHandler.ListUserTimeline)
		}

		compliments := apiV1.Group("/compliments")
		{
			compliments.POST("/generate", complimentHandler.Generate)
			compliments.GET("/styles", complimentHandler.Catalog)
			compliments.POST("", complimentHandler.Create)
			compliments.GET("/public", complimentHandler.PublicFeed)
			compliments.GET("/following", complimentHandler.FollowingFeed)
			compliments.GET("/saved", complimentHandler.Saved)
			compliments.GET("/:id", complimentHandler.Get)
			compliments.DELETE("/:id", complimentHandler.Delete)
			compliments.POST("/:id/like", complimentHandler.ToggleLike)
			compliments.POST("/:id/save", complimentHandler.ToggleSave)
			compliments.PUT("/:id/visibility", complimentHandler.SetVisibility)
			compliments.POST("/:id/share/email", complimentHandler.ShareByEmail)
			compliments.GET("/:id/comments", complimentComments.List)
			compliments.POST("/:id/comments", complimentComments.Add)
			compliments.DELETE("/:id/comments/:commentId", complimentComments.Delete)
		}

		stories := apiV1.Group("/stories")
		{
			stories.POST("", storyHandler.Create)
			stories.GET("", storyHandler.Feed)
			stories.GET("/:id", storyHandler.Get)
			stories.DELETE("/:id", storyHandler.Delete)
			stories.POST("/:id/like", storyHandler.ToggleLike)
			stories.GET("/:id/comments", storyComments.List)
			stories.POST("/:id/comments", storyComments.Add)
			stories.DELETE("/:id/comments/:commentId", storyComments.Delete)
		}

		reminders := apiV1.Group("/reminders")
		{
			reminders.GET("", reminderHandler.List)
			reminders.POST("", reminderHandler.Create)
			reminders.PUT("/:id", reminderHandler.Update)
			reminders.DELETE("/:id", reminderHandler.Delete)
		}

		timeline := apiV1.Group("/timeline")
		{
			timeline.POST("", timelineHandler.Create)
			timeline.PUT("/:id", timelineHandler.Update)
			timeline.DELETE("/:id", timelineHandler.Delete)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured under /api/v1 and /health")
}
