package utils

import (
	"strings"
	"testing"
)

func TestValidateShortCode(t *testing.T) {
	valid := []string{"abc12", "A-b_9", "x", strings.Repeat("a", 32)}
	for _, code := range valid {
		if err := ValidateShortCode(code); err != nil {
			t.Errorf("code %q: unexpected error %v", code, err)
		}
	}

	invalid := []string{"", "has space", "tab\there", "slash/code", "太长", strings.Repeat("a", 33), "semi;colon"}
	for _, code := range invalid {
		if err := ValidateShortCode(code); err == nil {
			t.Errorf("code %q: expected error", code)
		}
	}
}

func TestValidateOriginalURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?q=1",
		"https://example.com/" + strings.Repeat("a", 100),
	}
	for _, raw := range valid {
		if err := ValidateOriginalURL(raw); err != nil {
			t.Errorf("url %q: unexpected error %v", raw, err)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"/relative/path",
		"https://example.com/" + strings.Repeat("a", 2048),
	}
	for _, raw := range invalid {
		if err := ValidateOriginalURL(raw); err == nil {
			t.Errorf("url %q: expected error", raw)
		}
	}
}
