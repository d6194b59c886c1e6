package video

import (
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoView always replies 200, whether the view was counted is in the body
func VideoView(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, d.Catalog.RecordView(c.Request.Context(), c.Param("id")))
}
