package repository

import (
	"linkpulse-go/internal/model"

	"gorm.io/gorm"
)

// BreakdownItem 单维度聚合结果（设备/浏览器/来源等）
type BreakdownItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DailyCount 按天聚合结果
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AnalyticsRepository 归因事件存储接口（只追加，不更新不删除）
type AnalyticsRepository interface {
	Append(event *model.AnalyticsEvent) error
	CountByLinkID(linkID uint) (int64, error)
	CountUniqueIPs(linkID uint) (int64, error)
	DeviceBreakdown(linkID uint) ([]BreakdownItem, error)
	BrowserBreakdown(linkID uint) ([]BreakdownItem, error)
	ReferrerBreakdown(linkID uint) ([]BreakdownItem, error)
	DailyBreakdown(linkID uint) ([]DailyCount, error)
}

type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) Append(event *model.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

func (r *GormAnalyticsRepository) CountByLinkID(linkID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnalyticsEvent{}).
		Where("link_id = ?", linkID).
		Count(&count).Error
	return count, err
}

func (r *GormAnalyticsRepository) CountUniqueIPs(linkID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnalyticsEvent{}).
		Where("link_id = ?", linkID).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

func (r *GormAnalyticsRepository) DeviceBreakdown(linkID uint) ([]BreakdownItem, error) {
	return r.breakdown(linkID, "device_type")
}

func (r *GormAnalyticsRepository) BrowserBreakdown(linkID uint) ([]BreakdownItem, error) {
	return r.breakdown(linkID, "browser")
}

func (r *GormAnalyticsRepository) ReferrerBreakdown(linkID uint) ([]BreakdownItem, error) {
	return r.breakdown(linkID, "referrer")
}

// breakdown 按单列分组统计，按次数倒序
func (r *GormAnalyticsRepository) breakdown(linkID uint, column string) ([]BreakdownItem, error) {
	rows, err := r.db.Model(&model.AnalyticsEvent{}).
		Select(column+" AS `key`, COUNT(*) AS cnt").
		Where("link_id = ?", linkID).
		Group(column).
		Order("cnt DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BreakdownItem
	for rows.Next() {
		var item BreakdownItem
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *GormAnalyticsRepository) DailyBreakdown(linkID uint) ([]DailyCount, error) {
	rows, err := r.db.Model(&model.AnalyticsEvent{}).
		Select("DATE(created_at) AS day, COUNT(*) AS cnt").
		Where("link_id = ?", linkID).
		Group("day").
		Order("day ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DailyCount
	for rows.Next() {
		var item DailyCount
		if err := rows.Scan(&item.Date, &item.Count); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
