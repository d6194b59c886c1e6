package service

import (
	"bitwise74/catalog-api/internal/model"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Uploader struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Record is a video joined with its uploader and engagement counts
type Record struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	FileID       string            `json:"fileId"`
	ThumbnailURL string            `json:"thumbnailUrl,omitempty"`
	Uploader     Uploader          `gorm:"embedded;embeddedPrefix:uploader_" json:"uploader"`
	Category     string            `json:"category"`
	Tags         model.StringSlice `json:"tags"`
	Views        int64             `json:"views"`
	LikesCount   int64             `json:"likesCount"`
	CommentCount int64             `json:"commentCount"`
	Likes        model.StringSlice `json:"likes"` // IDs of the users in the like set
	IsLiked      bool              `gorm:"-" json:"isLiked"`
	Score        *float64          `gorm:"-" json:"score,omitempty"`
	CreatedAt    int64             `json:"createdAt"`
	UpdatedAt    int64             `json:"updatedAt"`
}

// Builder runs composed catalog queries. Every call is a single statement
// that joins uploaders, like sets and comment counts, whatever the page size.
type Builder struct {
	db *gorm.DB
}

func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

const recordColumns = `v.id, v.title, v.description, v.file_id, v.thumbnail_url,
	v.uploader_id, COALESCE(u.username, '') AS uploader_username, COALESCE(u.avatar, '') AS uploader_avatar,
	v.category, v.tags, v.views, v.created_at, v.updated_at,
	COALESCE(lk.n, 0) AS likes_count, COALESCE(cm.n, 0) AS comment_count, COALESCE(lk.ids, '') AS likes`

// Ties on the primary key fall back to newest first, then ID, so pages of a
// static dataset never overlap.
const tieBreak = "v.created_at DESC, v.id DESC"

func (b *Builder) concatIDs() string {
	if b.db.Dialector.Name() == "postgres" {
		return "string_agg(user_id, ',')"
	}

	return "group_concat(user_id, ',')"
}

// likeEscaper makes every character of a substring match literal
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func filterScope(f Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.IDs != nil {
			if len(f.IDs) == 0 {
				return tx.Where("1 = 0")
			}
			tx = tx.Where("v.id IN ?", f.IDs)
		}

		if f.Category != "" {
			tx = tx.Where("v.category = ?", f.Category)
		}

		if f.UploaderID != "" {
			tx = tx.Where("v.uploader_id = ?", f.UploaderID)
		}

		if f.ExcludeID != "" {
			tx = tx.Where("v.id <> ?", f.ExcludeID)
		}

		if f.TitleLike != "" {
			tx = tx.Where(`LOWER(v.title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.TitleLike))+"%")
		}

		return tx
	}
}

// Count returns how many videos match the filter
func (b *Builder) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64

	err := b.db.WithContext(ctx).
		Table("videos AS v").
		Scopes(filterScope(f)).
		Count(&n).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to count videos, %w", err)
	}

	return n, nil
}

// Fetch returns the enriched records selected by s
func (b *Builder) Fetch(ctx context.Context, s Spec) ([]Record, error) {
	likes := "SELECT video_id, COUNT(*) AS n, " + b.concatIDs() + " AS ids FROM video_likes GROUP BY video_id"
	comments := "SELECT video_id, COUNT(*) AS n FROM comments GROUP BY video_id"

	tx := b.db.WithContext(ctx).
		Table("videos AS v").
		Select(recordColumns).
		Joins("LEFT JOIN users AS u ON u.id = v.uploader_id").
		Joins("LEFT JOIN (" + likes + ") AS lk ON lk.video_id = v.id").
		Joins("LEFT JOIN (" + comments + ") AS cm ON cm.video_id = v.id").
		Scopes(filterScope(s.Filter)).
		Order(s.Sort.orderColumn())

	if s.Sort != SortDate && s.Sort != SortRelevance {
		tx = tx.Order(tieBreak)
	} else {
		tx = tx.Order("v.id DESC")
	}

	if s.Page != nil {
		tx = tx.Offset(s.Page.Skip()).Limit(s.Page.Limit)
	}

	records := []Record{}
	if err := tx.Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch videos, %w", err)
	}

	return records, nil
}

// resolveLiked sets IsLiked for the viewer. Anonymous viewers never like anything.
func resolveLiked(records []Record, viewerID string) {
	for i := range records {
		records[i].IsLiked = viewerID != "" && records[i].Likes.Contains(viewerID)
	}
}
