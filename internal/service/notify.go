package service

import (
	"bitwise74/catalog-api/internal/model"
	"bitwise74/catalog-api/pkg/util"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Notifier records notifications for the notification subsystem to deliver
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

type DBNotifier struct {
	db *gorm.DB
}

func NewDBNotifier(db *gorm.DB) *DBNotifier {
	return &DBNotifier{db: db}
}

func (d *DBNotifier) Notify(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		id, err := util.NewID()
		if err != nil {
			return fmt.Errorf("failed to generate notification ID, %w", err)
		}
		n.ID = id
	}

	if err := d.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification, %w", err)
	}

	return nil
}
