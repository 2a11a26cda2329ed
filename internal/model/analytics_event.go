package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 事件类型枚举
const (
	EventTypeView   = "view"
	EventTypeClick  = "click"
	EventTypeQRScan = "qr_scan"
)

// AnalyticsEvent 点击归因事件（追加写入，永不更新/删除）
type AnalyticsEvent struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	LinkID      uint      `gorm:"not null;index" json:"linkId"`
	UserID      *string   `gorm:"size:64;index" json:"userId,omitempty"`
	EventType   string    `gorm:"size:16;not null" json:"eventType"`
	IPAddress   string    `gorm:"size:45" json:"ipAddress,omitempty"`
	UserAgent   string    `gorm:"size:512" json:"userAgent,omitempty"`
	Referrer    string    `gorm:"size:512" json:"referrer,omitempty"`
	DeviceType  string    `gorm:"size:32" json:"deviceType"`
	Browser     string    `gorm:"size:32" json:"browser"`
	OS          string    `gorm:"size:32" json:"os"`
	Country     string    `gorm:"size:100;default:'Unknown'" json:"country"`
	UTMSource   string    `gorm:"size:255" json:"utmSource,omitempty"`
	UTMMedium   string    `gorm:"size:255" json:"utmMedium,omitempty"`
	UTMCampaign string    `gorm:"size:255" json:"utmCampaign,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
