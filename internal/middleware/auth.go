package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Auth.
const (
	UserIDKey          = "userID"
	UserEmailKey       = "userEmail"
	UserDisplayNameKey = "userDisplayName"
	UserPhotoURLKey    = "userPhotoURL"
)

// ErrorResponse mirrors api.ErrorResponse so middleware does not import the api package.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Auth verifies the bearer token and stores the caller's uid and profile claims in the
// Gin context.
func Auth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Debug("ID token rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set(UserIDKey, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(UserEmailKey, email)
		}
		if name, ok := token.Claims["name"].(string); ok {
			c.Set(UserDisplayNameKey, name)
		}
		if picture, ok := token.Claims["picture"].(string); ok {
			c.Set(UserPhotoURLKey, picture)
		}
		c.Next()
	}
}
