package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type ProfileUser struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Joined          int64  `json:"joined"`
	SubscriberCount int64  `json:"subscriberCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}

type ProfileResult struct {
	User   ProfileUser `json:"user"`
	Videos []Record    `json:"videos"`
}

// Profile returns a user's public summary along with all of their videos,
// newest first
func (c *Catalog) Profile(ctx context.Context, username, viewerID string) (*ProfileResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("Username is missing")
	}

	var u model.User
	err := c.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	// Count and viewer membership come out of the same scan
	var subs struct {
		N       int64
		Viewing int64
	}
	err = c.db.WithContext(ctx).
		Model(model.Subscription{}).
		Select("COUNT(*) AS n, COALESCE(SUM(CASE WHEN subscriber_id = ? THEN 1 ELSE 0 END), 0) AS viewing", viewerID).
		Where("user_id = ?", u.ID).
		Scan(&subs).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to count subscribers, %w", err)
	}

	videos, err := c.builder.Fetch(ctx, Spec{
		Filter: Filter{UploaderID: u.ID},
		Sort:   SortDate,
	})
	if err != nil {
		return nil, err
	}

	resolveLiked(videos, viewerID)

	return &ProfileResult{
		User: ProfileUser{
			ID:              u.ID,
			Username:        u.Username,
			Joined:          u.CreatedAt,
			SubscriberCount: subs.N,
			IsSubscribed:    viewerID != "" && subs.Viewing > 0,
		},
		Videos: videos,
	}, nil
}

// Dashboard lists the caller's own videos, newest first, optionally narrowed
// to titles containing q
func (c *Catalog) Dashboard(ctx context.Context, userID, q string) ([]Record, error) {
	if userID == "" {
		return nil, errNoIdentity
	}

	videos, err := c.builder.Fetch(ctx, Spec{
		Filter: Filter{UploaderID: userID, TitleLike: strings.TrimSpace(q)},
		Sort:   SortDate,
	})
	if err != nil {
		return nil, err
	}

	resolveLiked(videos, userID)
	return videos, nil
}
