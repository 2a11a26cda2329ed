package useragent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		ua      string
		device  string
		browser string
		os      string
	}{
		{
			name:    "windows chrome desktop",
			ua:      "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/100.0 Safari/537.36",
			device:  DeviceDesktop,
			browser: BrowserChrome,
			os:      OSWindows,
		},
		{
			name:    "iphone safari mobile",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0) AppleWebKit/605.1.15 Safari/604.1",
			device:  DeviceMobile,
			browser: BrowserSafari,
			os:      OSIOS,
		},
		{
			// Chromium 内核 Edge 不能被判成 Chrome
			name:    "edge must not classify as chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Edg/100.0",
			device:  DeviceDesktop,
			browser: BrowserEdge,
			os:      OSWindows,
		},
		{
			name:    "android chrome mobile",
			ua:      "Mozilla/5.0 (Linux; Android 11) AppleWebKit/537.36 Chrome/90.0 Mobile",
			device:  DeviceMobile,
			browser: BrowserChrome,
			os:      OSAndroid,
		},
		{
			name:    "ipad safari tablet",
			ua:      "Mozilla/5.0 (iPad; CPU OS 14_0) AppleWebKit/605.1.15 Safari/604.1",
			device:  DeviceTablet,
			browser: BrowserSafari,
			os:      OSIOS,
		},
		{
			name:    "firefox linux desktop",
			ua:      "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			device:  DeviceDesktop,
			browser: BrowserFirefox,
			os:      OSLinux,
		},
		{
			name:    "empty ua falls back",
			ua:      "",
			device:  DeviceDesktop,
			browser: BrowserOther,
			os:      OSOther,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.ua)
			if got.DeviceType != tc.device {
				t.Errorf("device = %q, want %q", got.DeviceType, tc.device)
			}
			if got.Browser != tc.browser {
				t.Errorf("browser = %q, want %q", got.Browser, tc.browser)
			}
			if got.OS != tc.os {
				t.Errorf("os = %q, want %q", got.OS, tc.os)
			}
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	got := Classify("MOZILLA/5.0 (WINDOWS NT 10.0) CHROME/100.0 SAFARI/537.36")
	if got.Browser != BrowserChrome || got.OS != OSWindows {
		t.Errorf("got %+v", got)
	}
}

func TestClassifyTabletBeforeMobile(t *testing.T) {
	// 同时带 tablet 和 mobile 标记时，平板优先
	got := Classify("Mozilla/5.0 (Linux; Android 11; Tablet) Mobile")
	if got.DeviceType != DeviceTablet {
		t.Errorf("device = %q, want Tablet", got.DeviceType)
	}
}
