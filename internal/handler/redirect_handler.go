package handler

import (
	"net/http"

	"linkpulse-go/internal/model"
	"linkpulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

type RedirectHandler struct {
	resolver   *service.ResolverService
	attributor *service.AttributorService
}

func NewRedirectHandler(resolver *service.ResolverService, attributor *service.AttributorService) *RedirectHandler {
	return &RedirectHandler{
		resolver:   resolver,
		attributor: attributor,
	}
}

// Redirect 短码跳转入口。解析成功先派发归因（不等待），再发 302，
// 归因失败绝不影响跳转
func (h *RedirectHandler) Redirect(c *gin.Context) {
	// 提取路径作为 short_code（去掉前导 '/'）
	shortCode := c.Request.URL.Path[1:]

	link, err := h.resolver.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	// QR 扫码流量通过查询参数标记
	eventType := model.EventTypeClick
	if c.Query("qr") == "1" {
		eventType = model.EventTypeQRScan
	}

	h.attributor.Dispatch(link, service.RequestContext{
		UserAgent:   c.Request.UserAgent(),
		Referrer:    c.Request.Referer(),
		IP:          c.ClientIP(),
		EventType:   eventType,
		UTMSource:   c.Query("utm_source"),
		UTMMedium:   c.Query("utm_medium"),
		UTMCampaign: c.Query("utm_campaign"),
	})

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, link.OriginalURL)
}
