package service

import (
	"context"
	"errors"
	"time"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/dto"
	"linkpulse-go/internal/model"
	"linkpulse-go/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatsService 统计查询 + 定时把 Redis 计数落库
type StatsService struct {
	db       *gorm.DB
	links    repository.LinkRepository
	events   repository.AnalyticsRepository
	counters repository.CounterStore
	log      *zap.Logger
}

func NewStatsService(
	db *gorm.DB,
	links repository.LinkRepository,
	events repository.AnalyticsRepository,
	counters repository.CounterStore,
	log *zap.Logger,
) *StatsService {
	return &StatsService{
		db:       db,
		links:    links,
		events:   events,
		counters: counters,
		log:      log,
	}
}

// GetLinkStats 获取单条短链的统计汇总
func (s *StatsService) GetLinkStats(ctx context.Context, id uint) (*dto.LinkStatsResponse, error) {
	link, err := s.links.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundError("短链不存在")
		}
		s.log.Error("查询短链失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	resp := &dto.LinkStatsResponse{
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		ClickCount:  link.ClickCount,
	}

	if resp.TotalEvents, err = s.events.CountByLinkID(link.ID); err != nil {
		s.log.Error("统计事件总数失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	if resp.UniqueIPs, err = s.events.CountUniqueIPs(link.ID); err != nil {
		s.log.Error("统计独立 IP 失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	if resp.Devices, err = s.events.DeviceBreakdown(link.ID); err != nil {
		s.log.Error("统计设备分布失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	if resp.Browsers, err = s.events.BrowserBreakdown(link.ID); err != nil {
		s.log.Error("统计浏览器分布失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	if resp.TopReferrers, err = s.events.ReferrerBreakdown(link.ID); err != nil {
		s.log.Error("统计来源分布失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	if resp.Daily, err = s.events.DailyBreakdown(link.ID); err != nil {
		s.log.Error("统计每日曲线失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	// Redis 计数读失败不致命，返回 0 即可
	if pv, err := s.counters.TotalPV(link.ShortCode); err == nil {
		resp.TotalPV = pv
	}
	if uv, err := s.counters.TotalUV(link.ShortCode); err == nil {
		resp.TotalUV = uv
	}

	return resp, nil
}

// GetDailyStats 获取某条短链已落库的每日统计
func (s *StatsService) GetDailyStats(id uint) ([]model.DailyStat, error) {
	var stats []model.DailyStat
	err := s.db.Where("link_id = ?", id).Order("date DESC").Find(&stats).Error
	return stats, err
}

// FlushDailyStats 定时任务入口：把 Redis 里的每日 PV/UV 同步进 daily_stats
func (s *StatsService) FlushDailyStats() error {
	s.log.Info("FlushDailyStats start")
	links, err := s.links.All()
	if err != nil {
		s.log.Error("获取短链列表失败", zap.Error(err))
		return err
	}

	today := time.Now().Format("2006-01-02")
	for _, link := range links {
		s.flushLinkStats(link, today)
	}

	s.log.Info("FlushDailyStats end")
	return nil
}

func (s *StatsService) flushLinkStats(link model.Link, today string) {
	// 停用且超过一天没动过的短链不用再同步
	if !link.IsActive && !link.UpdatedAt.IsZero() {
		yesterday := time.Now().AddDate(0, 0, -1)
		if link.UpdatedAt.Before(yesterday) {
			s.log.Warn("#flushLinkStats | Skipping sync for shortcode",
				zap.String("shortcode", link.ShortCode),
				zap.Bool("is_active", link.IsActive),
				zap.Time("updatedTime", link.UpdatedAt),
			)
			return
		}
	}

	dateKey := time.Now().Format("20060102")
	dailyPv, _ := s.counters.DailyPV(link.ShortCode, dateKey)
	dailyUv, _ := s.counters.DailyUV(link.ShortCode, dateKey)

	dailyStat := &model.DailyStat{
		LinkID: link.ID,
		Date:   today,
		PV:     dailyPv,
		UV:     dailyUv,
	}

	db := s.db.Where("link_id = ? AND date = ?", link.ID, today).
		Assign("pv", dailyPv, "uv", dailyUv).
		FirstOrCreate(dailyStat)

	if db.Error != nil {
		s.log.Error("Failed to insert or update daily stat",
			zap.Uint("link_id", link.ID),
			zap.String("date", today),
			zap.Int64("pv", dailyPv),
			zap.Int64("uv", dailyUv),
			zap.Error(db.Error),
		)
	}
}
