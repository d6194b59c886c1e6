package root

import (
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Heartbeat replies 200 while the database answers, 503 otherwise
func Heartbeat(c *gin.Context, d *internal.Deps) {
	sqlDB, err := d.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		c.Status(http.StatusServiceUnavailable)
		zap.L().Error("Heartbeat failed, database unreachable", zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}
