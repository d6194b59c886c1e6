package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reindexTimeout = 5 * time.Minute

// Reindex rebuilds the text index from the store. Documents of videos that
// no longer exist are dropped.
func (c *Catalog) Reindex(ctx context.Context) error {
	var videos []model.Video
	if err := c.db.WithContext(ctx).Find(&videos).Error; err != nil {
		return fmt.Errorf("failed to load videos, %w", err)
	}

	if err := c.index.Rebuild(videos); err != nil {
		return fmt.Errorf("failed to rebuild index, %w", err)
	}

	zap.L().Debug("Rebuilt search index", zap.Int("videos", len(videos)))
	return nil
}

// ScheduleReindex starts a cron running Reindex on the given schedule. The
// caller owns the returned cron and should Stop it on shutdown.
func (c *Catalog) ScheduleReindex(spec string) (*cron.Cron, error) {
	cr := cron.New()

	_, err := cr.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
		defer cancel()

		if err := c.Reindex(ctx); err != nil {
			zap.L().Error("Scheduled reindex failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reindex schedule %q, %w", spec, err)
	}

	cr.Start()
	return cr, nil
}
