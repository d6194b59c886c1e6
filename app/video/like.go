package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoLike(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	res, err := d.Catalog.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respond.Error(c, err, "Failed to toggle like")
		return
	}

	c.JSON(http.StatusOK, res)
}
