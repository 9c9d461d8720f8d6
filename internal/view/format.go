// Package view builds view models from store state and renders them to HTML.
package view

import (
	"net/url"
	"strings"
)

// Initials returns up to two uppercased word initials, used as the avatar
// placeholder when no image is set or the image fails to load.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(string([]rune(w)[:1]))
	}
	return strings.ToUpper(b.String())
}

// TruncateURL renders a URL for display: hostname plus path, trailing slash
// stripped, cut to max runes with an ellipsis. Strings that do not parse as
// absolute URLs are truncated raw.
func TruncateURL(raw string, max int) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return truncate(raw, max)
	}
	display := u.Hostname() + u.Path
	display = strings.TrimSuffix(display, "/")
	return truncate(display, max)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
