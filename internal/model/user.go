package model

type User struct {
	ID        string `gorm:"primaryKey;size:16" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Avatar    string `json:"avatar"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}

// Subscription links a channel owner (UserID) to one of its subscribers
type Subscription struct {
	UserID       string `gorm:"primaryKey;size:16"`
	SubscriberID string `gorm:"primaryKey;size:16"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli"`
}
