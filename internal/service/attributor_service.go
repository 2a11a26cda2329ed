package service

import (
	"linkpulse-go/internal/ipinfo"
	"linkpulse-go/internal/model"
	"linkpulse-go/internal/repository"
	"linkpulse-go/internal/useragent"

	"go.uber.org/zap"
)

// RequestContext 归因所需的请求上下文
type RequestContext struct {
	UserAgent   string
	Referrer    string
	IP          string
	EventType   string // click / qr_scan / view
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
}

// GeoResolver 国家归属查询（尽力而为）
type GeoResolver interface {
	Country(ip string) string
}

// AttributorService 点击归因。跳转已经发出，这里的任何失败都只记日志，
// 绝不向上抛
type AttributorService struct {
	links    repository.LinkRepository
	events   repository.AnalyticsRepository
	counters repository.CounterStore
	geo      GeoResolver
	log      *zap.Logger
}

func NewAttributorService(
	links repository.LinkRepository,
	events repository.AnalyticsRepository,
	counters repository.CounterStore,
	geo GeoResolver,
	log *zap.Logger,
) *AttributorService {
	return &AttributorService{
		links:    links,
		events:   events,
		counters: counters,
		geo:      geo,
		log:      log,
	}
}

// Dispatch 派发后台归因任务，不等待完成，调用方立刻返回
func (s *AttributorService) Dispatch(link *model.Link, reqCtx RequestContext) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Attribution panic recovered",
					zap.Uint("link_id", link.ID),
					zap.Any("panic", r))
			}
		}()
		s.RecordClick(link, reqCtx)
	}()
}

// RecordClick 归因主体。计数自增和事件追加相互独立，没有顺序保证，
// 任何一步失败都不影响另一步
func (s *AttributorService) RecordClick(link *model.Link, reqCtx RequestContext) {
	// 原子自增 click_count
	if err := s.links.IncrementClickCount(link.ID); err != nil {
		s.log.Warn("点击计数自增失败",
			zap.Uint("link_id", link.ID),
			zap.String("short_code", link.ShortCode),
			zap.Error(err))
	}

	// Redis PV/UV 计数
	ip := reqCtx.IP
	if ip == "" {
		ip = ipinfo.FallbackIP()
	}
	if s.counters != nil {
		s.counters.RecordVisit(link.ShortCode, ip)
	}

	// 匿名短链只计数，不落归因事件
	if link.UserID == nil || *link.UserID == "" {
		return
	}

	eventType := reqCtx.EventType
	if eventType == "" {
		eventType = model.EventTypeClick
	}

	classification := useragent.Classify(reqCtx.UserAgent)

	country := ipinfo.UnknownCountry
	if s.geo != nil {
		country = s.geo.Country(reqCtx.IP)
	}

	event := &model.AnalyticsEvent{
		LinkID:      link.ID,
		UserID:      link.UserID,
		EventType:   eventType,
		IPAddress:   ip,
		UserAgent:   reqCtx.UserAgent,
		Referrer:    reqCtx.Referrer,
		DeviceType:  classification.DeviceType,
		Browser:     classification.Browser,
		OS:          classification.OS,
		Country:     country,
		UTMSource:   reqCtx.UTMSource,
		UTMMedium:   reqCtx.UTMMedium,
		UTMCampaign: reqCtx.UTMCampaign,
	}

	if err := s.events.Append(event); err != nil {
		s.log.Warn("归因事件写入失败",
			zap.Uint("link_id", link.ID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
