package video

import (
	"bitwise74/catalog-api/app/respond"
	"bitwise74/catalog-api/internal"
	"bitwise74/catalog-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func VideoEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data service.EditParams
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	v, err := d.Catalog.Edit(c.Request.Context(), c.Param("id"), userID, data)
	if err != nil {
		respond.Error(c, err, "Failed to edit video")
		return
	}

	c.JSON(http.StatusOK, v)
}
