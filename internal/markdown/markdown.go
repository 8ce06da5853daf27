package markdown

import (
	"fmt"
	"strings"

	"github.com/semanario-hq/semanario/internal/domain"
)

// Package markdown groups bookmarks into tag-derived sections and renders
// the weekly digest text.

// sectionOrder fixes the emission order of the known sections. Keys derived
// from tags outside this set are appended after it, in first-seen order.
var sectionOrder = []string{"design", "webdev", "art", "others"}

// sectionPrefixes are matched against tags in tag order; the first hit wins.
var sectionPrefixes = []string{"design", "webdev", "art"}

// displayNames maps section keys to their digest headings.
var displayNames = map[string]string{
	"design": "diseño",
	"webdev": "desarrollo web",
	"art":    "arte",
	"others": "otros",
}

// sectionFor derives the section key for a bookmark: the first tag (in tag
// order) starting with a known prefix decides, truncated at the first '/'.
// A bookmark carrying both design/x and webdev/y files under whichever tag
// appears earlier, not under a fixed priority.
func sectionFor(b domain.Bookmark) string {
	for _, tag := range b.Tags {
		for _, prefix := range sectionPrefixes {
			if strings.HasPrefix(tag, prefix) {
				if i := strings.IndexByte(tag, '/'); i >= 0 {
					return tag[:i]
				}
				return tag
			}
		}
	}
	return "others"
}

// displayName resolves the heading for a section key, falling back to the
// lowercased key itself when it is not one of the known sections.
func displayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	return strings.ToLower(key)
}

// fragment renders a single bookmark as its markdown block.
func fragment(b domain.Bookmark) string {
	if class := classifyLink(b.Link); class.embedSuppressed {
		return suppressedFragment(b, class.platform)
	}

	return fmt.Sprintf("[%s](%s)\n![](%s)",
		b.Title, b.Link, fmt.Sprintf(screenshotTemplate, encodeLink(b.Link)))
}

// suppressedFragment emits an HTML comment carrying the metadata, then the
// bare link so previews do not unfurl the platform embed.
func suppressedFragment(b domain.Bookmark, platform string) string {
	var sb strings.Builder
	sb.WriteString("<!-- ")
	sb.WriteString(platform)
	sb.WriteString(": ")
	sb.WriteString(b.Title)
	if len(b.Tags) > 0 {
		sb.WriteString(" | tags: ")
		sb.WriteString(strings.Join(b.Tags, ", "))
	}
	if b.Cover != "" {
		sb.WriteString(" | cover: ")
		sb.WriteString(b.Cover)
	}
	sb.WriteString(" -->\n")
	sb.WriteString(b.Link)
	return sb.String()
}

// Render produces the digest markdown for the given bookmarks: non-empty
// sections only, fixed section order, fragments and sections separated by
// blank lines. Rendering is pure and an empty input yields an empty string.
func Render(bookmarks []domain.Bookmark) string {
	order := append([]string(nil), sectionOrder...)
	sections := make(map[string][]string, len(order))

	for _, b := range bookmarks {
		key := sectionFor(b)
		if _, known := sections[key]; !known {
			if displayNames[key] == "" {
				order = append(order, key)
			}
		}
		sections[key] = append(sections[key], fragment(b))
	}

	parts := make([]string, 0, len(order))
	for _, key := range order {
		frags := sections[key]
		if len(frags) == 0 {
			continue
		}
		parts = append(parts, "## "+displayName(key)+"\n\n"+strings.Join(frags, "\n\n"))
	}
	return strings.Join(parts, "\n\n")
}
