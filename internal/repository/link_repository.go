package repository

import (
	"linkpulse-go/internal/model"

	"gorm.io/gorm"
)

// LinkRepository 短链数据访问接口，方便服务层替换实现做测试
type LinkRepository interface {
	Create(link *model.Link) error
	FindByID(id uint) (*model.Link, error)
	FindByShortCode(shortCode string) (*model.Link, error)
	// FindActiveByShortCode 只返回 is_active = true 的记录
	FindActiveByShortCode(shortCode string) (*model.Link, error)
	List(page, size int, shortCode string) ([]model.Link, int64, error)
	Update(link *model.Link) error
	// IncrementClickCount 原子自增，避免并发点击丢失更新
	IncrementClickCount(linkID uint) error
	Deactivate(linkID uint) error
	All() ([]model.Link, error)
}

type GormLinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &GormLinkRepository{db: db}
}

func (r *GormLinkRepository) Create(link *model.Link) error {
	return r.db.Create(link).Error
}

func (r *GormLinkRepository) FindByID(id uint) (*model.Link, error) {
	var link model.Link
	if err := r.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormLinkRepository) FindByShortCode(shortCode string) (*model.Link, error) {
	var link model.Link
	if err := r.db.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormLinkRepository) FindActiveByShortCode(shortCode string) (*model.Link, error) {
	var link model.Link
	if err := r.db.Where("short_code = ? AND is_active = ?", shortCode, true).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *GormLinkRepository) List(page, size int, shortCode string) ([]model.Link, int64, error) {
	db := r.db.Model(&model.Link{})
	if shortCode != "" {
		db = db.Where("short_code LIKE ?", "%"+shortCode+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []model.Link
	if err := db.
		Limit(size).
		Offset((page - 1) * size).
		Order("id DESC").
		Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

func (r *GormLinkRepository) Update(link *model.Link) error {
	return r.db.Save(link).Error
}

// IncrementClickCount 使用 UPDATE ... SET click_count = click_count + 1
// 而不是读取后回写，并发解析同一短链时计数不会丢失
func (r *GormLinkRepository) IncrementClickCount(linkID uint) error {
	return r.db.Model(&model.Link{}).
		Where("id = ?", linkID).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
}

func (r *GormLinkRepository) Deactivate(linkID uint) error {
	return r.db.Model(&model.Link{}).
		Where("id = ?", linkID).
		Update("is_active", false).Error
}

func (r *GormLinkRepository) All() ([]model.Link, error) {
	var links []model.Link
	if err := r.db.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
