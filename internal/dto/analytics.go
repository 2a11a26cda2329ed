package dto

import "linkpulse-go/internal/repository"

// LinkStatsResponse 单条短链的统计汇总
type LinkStatsResponse struct {
	ShortCode    string                     `json:"shortCode"`
	OriginalURL  string                     `json:"originalUrl"`
	ClickCount   int64                      `json:"clickCount"`
	TotalEvents  int64                      `json:"totalEvents"`
	UniqueIPs    int64                      `json:"uniqueIps"`
	TotalPV      int64                      `json:"totalPv"`
	TotalUV      int64                      `json:"totalUv"`
	Devices      []repository.BreakdownItem `json:"devices"`
	Browsers     []repository.BreakdownItem `json:"browsers"`
	TopReferrers []repository.BreakdownItem `json:"topReferrers"`
	Daily        []repository.DailyCount    `json:"daily"`
}
