package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a page to {locale}/{slug}/index.html. The "index"
// slug renders the locale root.
func buildOutputPath(locale, slug string) string {
	locale = strings.Trim(strings.TrimSpace(locale), "/")
	clean := strings.Trim(strings.TrimSpace(slug), " \t\r\n/")
	if clean == "" || clean == "index" {
		return path.Join(locale, "index.html")
	}
	return path.Join(locale, clean, "index.html")
}
