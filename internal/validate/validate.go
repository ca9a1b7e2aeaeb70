package validate

import (
	"regexp"
	"strings"
)

var (
	slugRE = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)

	// handle 比 slug 严格：
	//   首尾必须是字母数字，中间允许连字符，总长 3–30，且不允许连续连字符
	handleRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$`)

	emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func IsValidSlug(s string) bool { return slugRE.MatchString(s) }

func IsValidHandle(h string) bool {
	return handleRE.MatchString(h) && !strings.Contains(h, "--")
}

// NormalizeHandle 统一小写后再校验，"ADMIN" 这类输入先归一再撞保留表
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsValidEmail(email string) bool { return emailRE.MatchString(email) }

func NormalizeEmail(s string) string {
	return strings.ToLower(SanitizeString(s, 254))
}

func SanitizeString(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
