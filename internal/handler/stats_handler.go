package handler

import (
	"net/http"
	"strconv"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/service"
	"linkpulse-go/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service *service.StatsService
}

func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetLinkStats 单条短链的统计汇总
func (h *StatsHandler) GetLinkStats(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.InvalidRequestError("无效的 ID"))
		return
	}

	stats, err := h.service.GetLinkStats(c.Request.Context(), uint(id))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(stats, "success"))
}

// GetDailyStats 已落库的每日 PV/UV
func (h *StatsHandler) GetDailyStats(c *gin.Context) {
	idStr := c.Param("id")
	id, _ := strconv.Atoi(idStr)

	stats, err := h.service.GetDailyStats(uint(id))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
