package utils

import "strings"

// MaskEmail keeps the first character of the local part and the domain:
// "user@example.com" becomes "u***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" {
		return "***"
	}
	runes := []rune(local)
	if len(runes) == 0 {
		return "***@" + domain
	}
	return string(runes[0]) + "***@" + domain
}
