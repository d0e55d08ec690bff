package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/core"
	"github.com/loverprompt/loverprompt-backend/internal/db"
	"github.com/loverprompt/loverprompt-backend/internal/middleware"
)

// mapErrorToStatus maps service errors to HTTP status codes and ErrorResponse bodies.
// Internal details are logged, never sent.
func mapErrorToStatus(c *gin.Context, logger *zap.Logger, err error) {
	var status int
	var resp ErrorResponse

	switch {
	case errors.Is(err, core.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
		resp = ErrorResponse{Error: core.ErrQuotaExceeded.Error()}
	case errors.Is(err, core.ErrGenerationFailed):
		status = http.StatusBadGateway
		resp = ErrorResponse{Error: "Could not generate a compliment right now, please try again"}
	case errors.Is(err, db.ErrValidation):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: "Invalid request", Details: cause(err)}
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: "Resource not found"}
	case errors.Is(err, db.ErrPermissionDenied):
		status = http.StatusForbidden
		resp = ErrorResponse{Error: "You do not have access to this resource"}
	case errors.Is(err, db.ErrConflict):
		status = http.StatusConflict
		resp = ErrorResponse{Error: "Resource already exists"}
	case errors.Is(err, db.ErrTransport):
		status = http.StatusServiceUnavailable
		resp = ErrorResponse{Error: "Service temporarily unavailable"}
	default:
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
	} else {
		logger.Debug("Request rejected", zap.Error(err), zap.Int("status", status))
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

// cause returns the client-safe message of the first DataError in err's chain. Errors
// classified from the backend carry none.
func cause(err error) string {
	var de *db.DataError
	if errors.As(err, &de) {
		return de.Msg
	}
	return ""
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
}

// currentUserID returns the uid set by the auth middleware, or writes a 401.
func currentUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.UserIDKey)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return "", false
	}
	return uid, true
}

// pageParams reads ?limit and ?cursor. An unparsable limit falls back to the default.
func pageParams(c *gin.Context) (int, string) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}
	return limit, c.Query("cursor")
}
