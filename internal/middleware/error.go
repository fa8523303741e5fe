package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/insurai/authcore/internal/domain"
)

// ErrorHandler catches errors recorded by handlers and translates domain
// errors to HTTP statuses. Raw internal errors never cross the boundary;
// their details go to the log only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := errorToHTTP(err)

		if status == http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		} else {
			zap.L().Warn("request rejected",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		c.JSON(status, gin.H{"error": message})
	}
}

// errorToHTTP translates domain errors to HTTP status codes
func errorToHTTP(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case domain.IsConflict(err):
		return http.StatusConflict, err.Error()
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
