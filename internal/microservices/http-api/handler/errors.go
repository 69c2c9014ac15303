package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/middleware"
	"mediatracker/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// countKey names the dependent count in delete responses, e.g. "mediaCount".
func countKey(kind string) string {
	return kind + "Count"
}

func respondError(c *gin.Context, log *zap.Logger, err error) {
	var confirm *service.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"message":                       confirm.Error(),
			"state":                         confirm.State(),
			countKey(confirm.DependentKind): confirm.DependentCount,
		})
		return
	}

	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal server error"})
	case http.StatusGatewayTimeout:
		log.Warn("request timed out",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(status, gin.H{"error": "request timed out"})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func respondDeleted(c *gin.Context, what string, result *service.DeleteResult) {
	c.JSON(http.StatusOK, gin.H{
		"message":                      what + " deleted successfully",
		"state":                        result.State,
		countKey(result.DependentKind): result.DependentCount,
	})
}

// callerID returns the authenticated user id or writes a 401.
func callerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, false
	}
	return id, true
}

// pathID parses the :id route parameter as a positive base-10 integer or
// writes a 400.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into req or writes a 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// deleteConfirmed reads the confirmation from the body or ?confirm=true.
// An empty body is not an error.
func deleteConfirmed(c *gin.Context) (bool, bool) {
	var req dto.DeleteRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return false, false
		}
	}
	return req.Confirm || c.Query("confirm") == "true", true
}

func withTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
