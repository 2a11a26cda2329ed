package model

import "time"

// Link 短链记录（软删除：IsActive = false 后不再解析）
type Link struct {
	BaseModel
	ShortCode   string     `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	OriginalURL string     `gorm:"size:2048;not null" json:"originalUrl"`
	Title       string     `gorm:"size:255" json:"title,omitempty"`
	Description string     `gorm:"size:1024" json:"description,omitempty"`
	ClickCount  int64      `gorm:"default:0" json:"clickCount"`
	CreatedIP   string     `gorm:"size:45" json:"createdIp,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	IsActive    bool       `gorm:"default:true;index" json:"isActive"`
	UserID      *string    `gorm:"size:64;index" json:"userId,omitempty"`
}
