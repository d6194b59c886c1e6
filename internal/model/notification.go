package model

const NotificationLike = "like"

type Notification struct {
	ID          string `gorm:"primaryKey;size:16" json:"id"`
	RecipientID string `gorm:"index;not null" json:"recipient"`
	SenderID    string `gorm:"not null" json:"sender"`
	Type        string `gorm:"not null" json:"type"`
	VideoID     string `gorm:"index" json:"video"`
	Read        bool   `gorm:"not null;default:false" json:"read"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}
