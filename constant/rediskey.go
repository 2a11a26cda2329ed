package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "resolve:"
	Separator  = ":"
)

// Redis 键模板
const (
	LinkCache = BasePrefix + "link:%s"
	DailyPV   = BasePrefix + "pv" + Separator + "%s"                    // resolve:pv:yyyyMMdd
	DailyUV   = BasePrefix + "uv" + Separator + "%s" + Separator + "%s" // resolve:uv:yyyyMMdd:shortcode
	TotalPV   = BasePrefix + "total_pv" + Separator + "%s"              // resolve:total_pv:shortcode
	TotalUV   = BasePrefix + "total_uv" + Separator + "%s"              // resolve:total_uv:shortcode
)

// 缓存 TTL（秒）
const (
	LinkCacheTTL    = 3600 // 正缓存 1 小时
	LinkNegativeTTL = 300  // 空值缓存 5 分钟，防止缓存穿透
	DailyCounterTTL = 3 * 24 * 3600
)

// GetLinkCacheKey 生成短链缓存 key
func GetLinkCacheKey(shortCode string) string {
	return fmt.Sprintf(LinkCache, shortCode)
}

// GetDateKey 生成当前日期的键（格式：yyyyMMdd）
func GetDateKey() string {
	return time.Now().Format("20060102")
}

// GetDailyPVKey 生成每日 PV 键（格式：resolve:pv:yyyyMMdd）
func GetDailyPVKey(date string) string {
	return fmt.Sprintf(DailyPV, date)
}

// GetDailyUVKey 生成每日 UV 键（格式：resolve:uv:yyyyMMdd:shortcode）
func GetDailyUVKey(shortCode, date string) string {
	return fmt.Sprintf(DailyUV, date, shortCode)
}

// GetTotalPVKey 生成总 PV 键
func GetTotalPVKey(shortCode string) string {
	return fmt.Sprintf(TotalPV, shortCode)
}

// GetTotalUVKey 生成总 UV 键
func GetTotalUVKey(shortCode string) string {
	return fmt.Sprintf(TotalUV, shortCode)
}
