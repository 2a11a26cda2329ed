package service

import (
	"context"
	"errors"
	"net/http"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/dto"
	"linkpulse-go/internal/model"
	"linkpulse-go/internal/repository"
	"linkpulse-go/pkg/utils"
	"linkpulse-go/response"

	"github.com/teris-io/shortid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxGenerateRetries = 5

// LinkService 短链管理（创建/查询/更新/停用）
type LinkService struct {
	links repository.LinkRepository
	cache repository.LinkCache
	log   *zap.Logger
}

func NewLinkService(links repository.LinkRepository, cache repository.LinkCache, log *zap.Logger) *LinkService {
	return &LinkService{
		links: links,
		cache: cache,
		log:   log,
	}
}

// CreateLink 创建短链。未指定短码时服务端生成，冲突重试
func (s *LinkService) CreateLink(ctx context.Context, req dto.CreateLinkRequest, clientIP string) (*model.Link, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	shortCode := req.ShortCode
	if shortCode == "" {
		code, err := s.generateShortCode()
		if err != nil {
			return nil, apperrors.SystemErrorDefault()
		}
		shortCode = code
	} else {
		// 检查自定义短码是否已被占用
		if _, err := s.links.FindByShortCode(shortCode); err == nil {
			s.log.Info("短链已存在", zap.String("short_code", shortCode))
			return nil, apperrors.BusinessError(http.StatusConflict, "短链已存在")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info("查询短链失败", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
	}

	link := &model.Link{
		ShortCode:   shortCode,
		OriginalURL: req.OriginalURL,
		Title:       req.Title,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		CreatedIP:   clientIP,
		IsActive:    true,
	}
	if req.UserID != "" {
		userID := req.UserID
		link.UserID = &userID
	}

	if err := s.links.Create(link); err != nil {
		s.log.Info("数据库操作失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return link, nil
}

// generateShortCode 生成不冲突的随机短码
func (s *LinkService) generateShortCode() (string, error) {
	for i := 0; i < maxGenerateRetries; i++ {
		code, err := shortid.Generate()
		if err != nil {
			return "", err
		}
		if err := utils.ValidateShortCode(code); err != nil {
			continue
		}

		_, err = s.links.FindByShortCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		// 命中说明冲突，换一个重试
		s.log.Info("短码冲突，重新生成",
			zap.String("short_code", code),
			zap.Int("attempt", i+1))
	}
	return "", errors.New("unable to generate unique short code")
}

// ListLinks 支持分页查询短链列表
func (s *LinkService) ListLinks(ctx context.Context, page, size int, shortCode string) (*response.PageResponse[model.Link], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10 // 默认每页10条，最大100条
	}

	links, total, err := s.links.List(page, size, shortCode)
	if err != nil {
		s.log.Info("数据库操作失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	totalPage := (int(total) + size - 1) / size

	return &response.PageResponse[model.Link]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      links,
	}, nil
}

// UpdateLink 仅更新短链的 original_url 字段
func (s *LinkService) UpdateLink(ctx context.Context, id uint, originalURL string) error {
	existing, err := s.links.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BusinessError(http.StatusNotFound, "短链不存在")
		}
		s.log.Warn("查询短链失败",
			zap.Uint("id", id),
			zap.String("original_url", originalURL),
			zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	if err := utils.ValidateOriginalURL(originalURL); err != nil {
		return apperrors.InvalidRequestError(err.Error())
	}

	if existing.OriginalURL == originalURL {
		return nil // 无需更新
	}

	existing.OriginalURL = originalURL
	if err := s.links.Update(existing); err != nil {
		s.log.Warn("更新短链失败",
			zap.Uint("id", id),
			zap.String("original_url", originalURL),
			zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	// 目标地址变了，旧缓存作废
	if err := s.cache.Delete(existing.ShortCode); err != nil {
		s.log.Warn("Redis 删除缓存失败",
			zap.String("short_code", existing.ShortCode),
			zap.Error(err))
	}

	return nil
}

// SetLinkActive 启用/停用短链（软删除，记录永不物理删除）
func (s *LinkService) SetLinkActive(ctx context.Context, id uint, active bool) error {
	link, err := s.links.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BusinessError(http.StatusConflict, "短链不存在")
		}
		s.log.Error("查询短链失败",
			zap.Uint("id", id),
			zap.Bool("active", active),
			zap.Error(err))
		return apperrors.SystemError("查询短链失败: " + err.Error())
	}

	link.IsActive = active
	if err := s.links.Update(link); err != nil {
		return apperrors.SystemError("更新短链状态失败: " + err.Error())
	}

	if !active {
		// 停用短链，删除缓存，否则缓存期内还能跳转
		if err := s.cache.Delete(link.ShortCode); err != nil {
			s.log.Warn("Redis 删除缓存失败",
				zap.String("short_code", link.ShortCode),
				zap.Error(err))
		}
	}

	return nil
}
