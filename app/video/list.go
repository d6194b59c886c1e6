// Package video contains the handlers of the /api/videos routes
package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"bitwise74/catalog-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoList(c *gin.Context, d *internal.Deps) {
	res, err := d.Catalog.List(c.Request.Context(), service.ListParams{
		Sort:     c.Query("sort"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Category: c.Query("category"),
	}, c.GetString("userID"))
	if err != nil {
		respond.Error(c, err, "Failed to list videos")
		return
	}

	c.JSON(http.StatusOK, res)
}
