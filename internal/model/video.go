// Package model defines database models
package model

// Categories is the fixed set a video can be filed under
var Categories = []string{
	"Music",
	"Gaming",
	"Education",
	"Entertainment",
	"Sports",
	"News",
	"Technology",
	"Comedy",
	"Film & Animation",
	"Science",
	"Travel",
	"Other",
}

// DefaultCategory is used when an upload doesn't pick one
const DefaultCategory = "Other"

type Video struct {
	ID           string      `gorm:"primaryKey;size:16" json:"id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `gorm:"not null" json:"description"`
	FileID       string      `gorm:"uniqueIndex;not null" json:"fileId"` // Key of the media object in external storage
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	UploaderID   string      `gorm:"index;not null" json:"uploader"`
	Category     string      `gorm:"index;not null;default:Other" json:"category"`
	Tags         StringSlice `json:"tags"`
	Views        int64       `gorm:"not null;default:0" json:"views"`
	CreatedAt    int64       `gorm:"autoCreateTime:milli;index" json:"createdAt"` // All are unix millisecond timestamps
	UpdatedAt    int64       `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}

// VideoLike is one member of a video's like set. The composite key keeps
// every user in the set at most once.
type VideoLike struct {
	VideoID   string `gorm:"primaryKey;size:16"`
	UserID    string `gorm:"primaryKey;size:16;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli"`
}
