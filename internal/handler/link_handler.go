package handler

import (
	"net/http"
	"strconv"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/dto"
	"linkpulse-go/internal/service"
	"linkpulse-go/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LinkHandler struct {
	service *service.LinkService
}

func NewLinkHandler(service *service.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

func (h *LinkHandler) CreateLink(c *gin.Context) {
	var req dto.CreateLinkRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		// 记录请求上下文（方法、路径）
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		//显式忽略返回值
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	link, err := h.service.CreateLink(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		zap.L().Warn("Short link creation failed",
			zap.Error(err),
			zap.String("short_code", req.ShortCode),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(link, "Short link creation successful"))
}

// ListLinks 分页查询短链列表
func (h *LinkHandler) ListLinks(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")
	shortCode := c.Query("shortCode")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("页码必须为正整数"))
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.InvalidRequestError("每页数量必须为1-100之间的整数"))
		return
	}

	pageResp, err := h.service.ListLinks(c.Request.Context(), page, size, shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// UpdateLinkStatus 更新短链状态（启用/停用）
func (h *LinkHandler) UpdateLinkStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.InvalidRequestError("无效的 ID"))
		return
	}

	var req struct {
		Status int `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.InvalidRequestError("请求体格式错误"))
		return
	}

	// 校验 status 值：1 启用，0 停用
	if req.Status != 0 && req.Status != 1 {
		_ = c.Error(apperrors.InvalidRequestError("status 必须为 0 或 1"))
		return
	}

	if err := h.service.SetLinkActive(c.Request.Context(), uint(id), req.Status == 1); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(struct{}{}, "短链状态已更新"))
}

// UpdateLink 更新短链目标地址
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		zap.L().Warn("Invalid link ID",
			zap.String("id", idStr),
			zap.Error(err))
		_ = c.Error(apperrors.BusinessError(http.StatusBadRequest, "无效的短链 ID"))
		return
	}

	var req dto.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	if err := h.service.UpdateLink(c.Request.Context(), uint(id), req.OriginalURL); err != nil {
		zap.L().Warn("Short link update failed",
			zap.Error(err),
			zap.Uint("id", uint(id)),
			zap.String("original_url", req.OriginalURL),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK("", "Short link update successful"))
}
