package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoGet(c *gin.Context, d *internal.Deps) {
	v, err := d.Catalog.Get(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respond.Error(c, err, "Failed to fetch video")
		return
	}

	c.JSON(http.StatusOK, v)
}
