package service

import (
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/pkg/util"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ViewResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecordView adds one view to a video. It never fails, a view that couldn't
// be counted is logged and reported as unsuccessful.
func (c *Catalog) RecordView(ctx context.Context, videoID string) ViewResult {
	if !util.IsID(videoID) {
		return ViewResult{Success: false, Message: "Invalid video ID format."}
	}

	res := c.db.WithContext(ctx).
		Model(model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		zap.L().Error("Failed to increment view count", zap.Error(res.Error), zap.String("videoID", videoID))
		return ViewResult{Success: false, Message: "Could not increment view count."}
	}

	if res.RowsAffected == 0 {
		return ViewResult{Success: false, Message: "Video not found."}
	}

	return ViewResult{Success: true, Message: "View count incremented."}
}
