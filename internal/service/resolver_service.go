package service

import (
	"context"
	"errors"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/model"
	"linkpulse-go/internal/repository"
	"linkpulse-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResolverService 短码解析。单次查询，幂等，唯一的领域错误是 ErrNotFound
type ResolverService struct {
	links repository.LinkRepository
	cache repository.LinkCache
	log   *zap.Logger
}

func NewResolverService(links repository.LinkRepository, cache repository.LinkCache, log *zap.Logger) *ResolverService {
	return &ResolverService{
		links: links,
		cache: cache,
		log:   log,
	}
}

// Resolve 按短码查找可跳转的短链记录。
// 非法短码直接按不存在处理，不查库；存储层故障对调用方同样表现为
// ErrNotFound（用户侧回退首页），但日志里要能区分
func (s *ResolverService) Resolve(ctx context.Context, shortCode string) (*model.Link, error) {
	if err := utils.ValidateShortCode(shortCode); err != nil {
		s.log.Warn("无效的 short_code",
			zap.String("short_code", shortCode),
			zap.String("action", "validate_short_code"),
		)
		return nil, apperrors.ErrNotFound
	}

	// 先查缓存
	cached, negative, err := s.cache.Get(shortCode)
	if err != nil {
		s.log.Warn("Error getting from Redis",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
	if negative {
		return nil, apperrors.ErrNotFound
	}
	if cached != nil {
		return cached, nil
	}

	// 缓存未命中，从数据库查询
	link, err := s.links.FindActiveByShortCode(shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 缓存空值，防止缓存穿透
			if cacheErr := s.cache.SetNotFound(shortCode); cacheErr != nil {
				s.log.Error("设置缓存失败",
					zap.String("short_code", shortCode),
					zap.Error(cacheErr))
			}
			return nil, apperrors.ErrNotFound
		}
		// 存储层故障：日志区分，对外语义同 NotFound
		s.log.Error("查询短链失败",
			zap.String("short_code", shortCode),
			zap.Error(err))
		return nil, apperrors.ErrNotFound
	}

	if err := s.cache.Set(link); err != nil {
		s.log.Error("设置缓存失败",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	return link, nil
}
