package service

import (
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/pkg/util"
	"bitwise74/catalog-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const mediaDeleteTimeout = 10 * time.Second

type PublishParams struct {
	FileID       string   `json:"fileId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// Publish registers a video once its upload finished and the media store
// handed out a file ID
func (c *Catalog) Publish(ctx context.Context, userID string, p PublishParams) (*Record, error) {
	if userID == "" {
		return nil, errNoIdentity
	}

	v := model.Video{
		Title:        strings.TrimSpace(p.Title),
		Description:  p.Description,
		FileID:       strings.TrimSpace(p.FileID),
		ThumbnailURL: strings.TrimSpace(p.ThumbnailURL),
		UploaderID:   userID,
	}

	if err := validators.FileIDValidator(v.FileID); err != nil {
		return nil, invalid(err.Error())
	}
	if err := validators.TitleValidator(v.Title); err != nil {
		return nil, invalid(err.Error())
	}
	if err := validators.DescriptionValidator(v.Description); err != nil {
		return nil, invalid(err.Error())
	}
	if err := validators.ThumbnailValidator(v.ThumbnailURL); err != nil {
		return nil, invalid(err.Error())
	}

	category, err := validators.CategoryValidator(strings.TrimSpace(p.Category))
	if err != nil {
		return nil, invalid(err.Error())
	}
	v.Category = category

	tags, err := validators.TagsValidator(p.Tags)
	if err != nil {
		return nil, invalid(err.Error())
	}
	v.Tags = tags

	var taken bool
	err = c.db.WithContext(ctx).
		Model(model.Video{}).
		Select("count(*) > 0").
		Where("file_id = ?", v.FileID).
		Find(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if file ID is taken, %w", err)
	}

	if taken {
		return nil, newErr(ErrConflict, "A video with this file ID already exists")
	}

	v.ID, err = util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate video ID, %w", err)
	}

	if err := c.db.WithContext(ctx).Create(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newErr(ErrConflict, "A video with this file ID already exists")
		}

		return nil, fmt.Errorf("failed to create video, %w", err)
	}

	if err := c.index.Index(&v); err != nil {
		zap.L().Error("Failed to index new video", zap.Error(err), zap.String("videoID", v.ID))
	}

	return c.Get(ctx, v.ID, userID)
}

// ownedVideo loads a video and checks that userID uploaded it. Existence is
// checked before ownership.
func (c *Catalog) ownedVideo(ctx context.Context, videoID, userID, action string) (*model.Video, error) {
	if userID == "" {
		return nil, errNoIdentity
	}

	if !util.IsID(videoID) {
		return nil, invalid("Invalid video ID format.")
	}

	var v model.Video
	if err := c.db.WithContext(ctx).Where("id = ?", videoID).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Video not found")
		}

		return nil, fmt.Errorf("failed to look up video, %w", err)
	}

	if v.UploaderID != userID {
		return nil, forbidden("User not authorized to " + action + " this video")
	}

	return &v, nil
}

type EditParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Edit changes the title and/or description of a video owned by userID.
// Absent or blank values keep the current ones.
func (c *Catalog) Edit(ctx context.Context, videoID, userID string, p EditParams) (*Record, error) {
	v, err := c.ownedVideo(ctx, videoID, userID, "edit")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if p.Title != nil {
		if t := strings.TrimSpace(*p.Title); t != "" {
			if err := validators.TitleValidator(t); err != nil {
				return nil, invalid(err.Error())
			}
			updates["title"] = t
			v.Title = t
		}
	}

	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		if err := validators.DescriptionValidator(*p.Description); err != nil {
			return nil, invalid(err.Error())
		}
		updates["description"] = *p.Description
		v.Description = *p.Description
	}

	if len(updates) > 0 {
		res := c.db.WithContext(ctx).
			Model(model.Video{}).
			Where("id = ? AND uploader_id = ?", v.ID, userID).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update video, %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return nil, notFound("Video not found")
		}

		if err := c.index.Index(v); err != nil {
			zap.L().Error("Failed to reindex edited video", zap.Error(err), zap.String("videoID", v.ID))
		}
	}

	return c.Get(ctx, v.ID, userID)
}

// Delete removes a video owned by userID. Comments go first, then the media
// object, then the video with its like set. Only the last step decides the
// outcome, failures of the others are logged.
func (c *Catalog) Delete(ctx context.Context, videoID, userID string) error {
	v, err := c.ownedVideo(ctx, videoID, userID, "delete")
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).
		Where("video_id = ?", v.ID).
		Delete(&model.Comment{}).
		Error
	if err != nil {
		zap.L().Error("Failed to delete comments of video", zap.Error(err), zap.String("videoID", v.ID))
	}

	mctx, cancel := context.WithTimeout(ctx, mediaDeleteTimeout)
	if err := c.media.Delete(mctx, v.FileID); err != nil {
		err = fmt.Errorf("%w: %w", ErrDependency, err)
		zap.L().Error("Failed to delete media object", zap.Error(err), zap.String("fileID", v.FileID))
	} else {
		zap.L().Debug("Deleted media object", zap.String("fileID", v.FileID))
	}
	cancel()

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", v.ID).Delete(&model.VideoLike{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", v.ID).Delete(&model.Video{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete video, %w", err)
	}

	if err := c.index.Delete(v.ID); err != nil {
		zap.L().Error("Failed to remove deleted video from index", zap.Error(err), zap.String("videoID", v.ID))
	}

	return nil
}
