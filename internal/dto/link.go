package dto

import (
	"time"

	"linkpulse-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CreateLinkRequest 用于创建短链的请求参数
type CreateLinkRequest struct {
	OriginalURL string     `json:"originalUrl" binding:"required,url"` // Gin 内置 URL 校验
	ShortCode   string     `json:"shortCode" binding:"omitempty,max=32"`
	Title       string     `json:"title" binding:"omitempty,max=255"`
	Description string     `json:"description" binding:"omitempty,max=1024"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	UserID      string     `json:"userId" binding:"omitempty,max=64"` // 可空，允许匿名创建
}

// UpdateLinkRequest 用于更新短链目标地址的请求参数
type UpdateLinkRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required,url"`
}

// Validate 自定义验证逻辑
func (r *CreateLinkRequest) Validate() error {
	if err := utils.ValidateOriginalURL(r.OriginalURL); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}

	// ShortCode 可空（服务端自动生成），非空时校验
	if r.ShortCode != "" {
		if err := utils.ValidateShortCode(r.ShortCode); err != nil {
			return gin.Error{
				Err:  err,
				Type: gin.ErrorTypeBind,
			}
		}
	}

	return nil
}
