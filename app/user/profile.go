package user

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserProfile(c *gin.Context, d *internal.Deps) {
	res, err := d.Catalog.Profile(c.Request.Context(), c.Param("username"), c.GetString("userID"))
	if err != nil {
		respond.Error(c, err, "Failed to fetch user profile")
		return
	}

	c.JSON(http.StatusOK, res)
}
