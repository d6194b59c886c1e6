package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoDelete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	if err := d.Catalog.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respond.Error(c, err, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video deleted successfully",
	})
}
