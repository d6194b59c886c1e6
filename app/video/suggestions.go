package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"bitwise74/catalog-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoSuggestions(c *gin.Context, d *internal.Deps) {
	res, err := d.Catalog.Suggestions(c.Request.Context(), service.SuggestParams{
		ExcludeID: c.Query("exclude"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	}, c.GetString("userID"))
	if err != nil {
		respond.Error(c, err, "Failed to fetch suggestions")
		return
	}

	c.JSON(http.StatusOK, res)
}
