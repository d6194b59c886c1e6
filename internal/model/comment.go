package model

// Comment is owned by the comment subsystem. The catalog only counts
// comments per video and removes them when their video is deleted.
type Comment struct {
	ID        string `gorm:"primaryKey;size:16" json:"id"`
	VideoID   string `gorm:"index;not null" json:"video"`
	AuthorID  string `gorm:"not null" json:"author"`
	Body      string `gorm:"not null" json:"body"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}
