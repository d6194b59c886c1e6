package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"bitwise74/catalog-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoSearch replies with a plain array of matches, empty for an empty query
func VideoSearch(c *gin.Context, d *internal.Deps) {
	res, err := d.Catalog.Search(c.Request.Context(), service.SearchParams{
		Query: c.Query("q"),
		Sort:  c.Query("sort"),
	}, c.GetString("userID"))
	if err != nil {
		respond.Error(c, err, "Failed to search videos")
		return
	}

	c.JSON(http.StatusOK, res)
}
