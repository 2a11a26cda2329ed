package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode"
)

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateShortCode 校验 ShortCode 是否合法
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("error.shortcode_required")
	}

	if ContainsWhitespace(shortCode) {
		return fmt.Errorf("error.shortcode_cannot_contain_spaces")
	}

	if len(shortCode) > 32 {
		return fmt.Errorf("error.shortcode_max_length")
	}

	if !shortCodePattern.MatchString(shortCode) {
		return fmt.Errorf("error.shortcode_invalid")
	}

	return nil
}

// ValidateOriginalURL 校验原始 URL 的合法性
func ValidateOriginalURL(originalURL string) error {
	// 1. 检查 URL 是否为空
	if originalURL == "" {
		return fmt.Errorf("error.original_url_required")
	}

	// 2. URL 格式校验（必须是绝对地址）
	parsed, err := url.ParseRequestURI(originalURL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("error.original_url_invalid")
	}

	// 3. URL 长度限制
	if len(originalURL) > 2048 {
		return fmt.Errorf("error.original_url_max_length")
	}
	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
