package service

import (
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/pkg/util"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// A toggle only retries when a concurrent toggle of the same user on the
// same video changed the row between our two statements
const maxToggleAttempts = 8

type LikeResult struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}

// ToggleLike flips the membership of userID in the like set of a video and
// returns the new count and state. A like notification goes to the uploader
// exactly when the user was added and isn't the uploader.
func (c *Catalog) ToggleLike(ctx context.Context, videoID, userID string) (*LikeResult, error) {
	if userID == "" {
		return nil, errNoIdentity
	}

	if !util.IsID(userID) {
		return nil, invalid("Invalid user ID format.")
	}

	if !util.IsID(videoID) {
		return nil, invalid("Invalid video ID format.")
	}

	var v model.Video
	err := c.db.WithContext(ctx).
		Select("id", "uploader_id").
		Where("id = ?", videoID).
		First(&v).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Video not found")
		}

		return nil, fmt.Errorf("failed to look up video, %w", err)
	}

	added, err := c.toggleMembership(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	var likes int64
	err = c.db.WithContext(ctx).
		Model(model.VideoLike{}).
		Where("video_id = ?", videoID).
		Count(&likes).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to count likes, %w", err)
	}

	if added && userID != v.UploaderID {
		err := c.notifier.Notify(ctx, &model.Notification{
			RecipientID: v.UploaderID,
			SenderID:    userID,
			Type:        model.NotificationLike,
			VideoID:     videoID,
		})
		if err != nil {
			zap.L().Error("Failed to create like notification", zap.Error(err), zap.String("videoID", videoID))
		}
	}

	return &LikeResult{Likes: likes, IsLiked: added}, nil
}

// toggleMembership removes the like row if present, otherwise inserts it.
// Both statements are atomic on their own and report through the affected
// row count which transition happened, so the outcome never depends on an
// earlier read. When both affect nothing another toggle raced us and we go
// again.
func (c *Catalog) toggleMembership(ctx context.Context, videoID, userID string) (added bool, err error) {
	db := c.db.WithContext(ctx)

	for range maxToggleAttempts {
		res := db.
			Where("video_id = ? AND user_id = ?", videoID, userID).
			Delete(&model.VideoLike{})
		if res.Error != nil {
			return false, fmt.Errorf("failed to remove like, %w", res.Error)
		}

		if res.RowsAffected > 0 {
			return false, nil
		}

		res = db.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.VideoLike{VideoID: videoID, UserID: userID})
		if res.Error != nil {
			return false, fmt.Errorf("failed to add like, %w", res.Error)
		}

		if res.RowsAffected > 0 {
			return true, nil
		}
	}

	return false, fmt.Errorf("like toggle on video %s didn't settle after %d attempts", videoID, maxToggleAttempts)
}
