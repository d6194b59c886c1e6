// Package respond turns catalog errors into HTTP replies
package respond

import (
	"bitwise74/catalog-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status returns the HTTP status for an error returned by the catalog
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error replies with the error's safe message. Internal failures get a
// generic message and are logged under logMsg.
func Error(c *gin.Context, err error, logMsg string) {
	requestID := c.GetString("requestID")

	var se *service.Error
	if errors.As(err, &se) {
		c.JSON(Status(err), gin.H{
			"error":     se.Error(),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(logMsg, zap.Error(err), zap.String("requestID", requestID))
}
