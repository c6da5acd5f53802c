package utils

import "strings"

// SafeNext validates a post-login redirect target. Only same-origin relative
// paths survive; anything that a browser could treat as an absolute or
// protocol-relative URL is discarded to keep the login redirect unspoofable.
func SafeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "/" {
		return ""
	}
	if !strings.HasPrefix(raw, "/") {
		return ""
	}
	// "//evil.com" and "/\evil.com" are absolute URLs to browsers.
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	if strings.ContainsAny(raw, "\r\n") {
		return ""
	}
	return raw
}
