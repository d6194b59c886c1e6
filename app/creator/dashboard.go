package creator

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatorDashboard lists the caller's own uploads
func CreatorDashboard(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	videos, err := d.Catalog.Dashboard(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respond.Error(c, err, "Failed to fetch dashboard videos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
	})
}
