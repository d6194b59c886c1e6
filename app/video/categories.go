package video

import (
	"bitwise74/catalog-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoCategories(c *gin.Context) {
	c.JSON(http.StatusOK, model.Categories)
}
