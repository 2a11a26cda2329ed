package useragent

import "strings"

// 分类结果取值
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"

	BrowserChrome  = "Chrome"
	BrowserSafari  = "Safari"
	BrowserFirefox = "Firefox"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	BrowserOther   = "Other"

	OSWindows = "Windows"
	OSMacOS   = "macOS"
	OSLinux   = "Linux"
	OSAndroid = "Android"
	OSIOS     = "iOS"
	OSOther   = "Other"
)

// Classification UA 分类结果
type Classification struct {
	DeviceType string
	Browser    string
	OS         string
}

// rule 子串匹配规则，按顺序求值，命中即返回
type rule struct {
	match  func(ua string) bool
	result string
}

func contains(substrs ...string) func(string) bool {
	return func(ua string) bool {
		for _, s := range substrs {
			if strings.Contains(ua, s) {
				return true
			}
		}
		return false
	}
}

func without(substr string, inner func(string) bool) func(string) bool {
	return func(ua string) bool {
		return inner(ua) && !strings.Contains(ua, substr)
	}
}

// 规则顺序即语义，不能调整：
// 设备先匹配平板再匹配手机；Chrome 必须排除 edg，Safari 必须排除 chrome，
// 否则 Chromium 内核的 Edge 会被误判为 Chrome/Safari
var (
	deviceRules = []rule{
		{contains("ipad", "tablet"), DeviceTablet},
		{contains("mobile", "android", "iphone"), DeviceMobile},
	}

	browserRules = []rule{
		{without("edg", contains("chrome")), BrowserChrome},
		{without("chrome", contains("safari")), BrowserSafari},
		{contains("firefox"), BrowserFirefox},
		{contains("edg"), BrowserEdge},
		{contains("opera", "opr"), BrowserOpera},
	}

	// Android 的 UA 同时带有 "Linux"，必须先于 Linux 匹配
	osRules = []rule{
		{contains("windows"), OSWindows},
		{contains("mac", "darwin"), OSMacOS},
		{contains("android"), OSAndroid},
		{contains("linux"), OSLinux},
		{contains("ios", "iphone", "ipad"), OSIOS},
	}
)

func evaluate(rules []rule, ua, fallback string) string {
	for _, r := range rules {
		if r.match(ua) {
			return r.result
		}
	}
	return fallback
}

// Classify 对 UA 字符串做大小写无关的子串分类。纯函数，永不失败，
// 未命中的维度落到 Desktop/Other
func Classify(userAgent string) Classification {
	ua := strings.ToLower(userAgent)
	return Classification{
		DeviceType: evaluate(deviceRules, ua, DeviceDesktop),
		Browser:    evaluate(browserRules, ua, BrowserOther),
		OS:         evaluate(osRules, ua, OSOther),
	}
}
