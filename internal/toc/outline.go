package toc

import (
	"strconv"

	"github.com/goliatone/go-slug"
)

const fallbackAnchor = "section"

// Entry is a heading decorated with the fragment id it links to.
type Entry struct {
	Heading
	Anchor string
}

// Outline assigns a unique anchor to every heading, in order. Repeated
// anchors get -2, -3, ... suffixes.
func Outline(headings TableOfContents) []Entry {
	if len(headings) == 0 {
		return nil
	}
	used := make(map[string]bool, len(headings))
	out := make([]Entry, 0, len(headings))
	for _, h := range headings {
		base := Anchor(h.Title)
		anchor := base
		for n := 2; used[anchor]; n++ {
			anchor = base + "-" + strconv.Itoa(n)
		}
		used[anchor] = true
		out = append(out, Entry{Heading: h, Anchor: anchor})
	}
	return out
}

// Anchor normalises title into a fragment id.
func Anchor(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return fallbackAnchor
	}
	return normalized
}
