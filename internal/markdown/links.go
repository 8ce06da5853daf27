package markdown

import (
	"net/url"
	"strings"
)

// Screenshot previews are delegated to the mShots rendering service; the
// bookmark link is URL-encoded into the path and never followed up on.
const screenshotTemplate = "https://s0.wp.com/mshots/v1/%s?w=1280"

// linkClass tags a bookmark link with its rendering mode. Standard links get
// a markdown link plus a screenshot embed; embed-suppressed platforms
// (Twitter/X, YouTube) get an HTML comment and the bare URL so markdown
// previews stay quiet while the metadata survives.
type linkClass struct {
	embedSuppressed bool
	platform        string
}

// classifyLink inspects the link host against the closed set of
// embed-suppressed platforms. Anything unparseable or non-HTTP renders as a
// standard link.
func classifyLink(raw string) linkClass {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return linkClass{}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return linkClass{}
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	switch host {
	case "twitter.com", "x.com":
		return linkClass{embedSuppressed: true, platform: "Twitter/X"}
	case "youtube.com", "youtu.be":
		return linkClass{embedSuppressed: true, platform: "YouTube"}
	}
	return linkClass{}
}

// encodeLink percent-encodes a link for embedding in the screenshot URL,
// including spaces (query escaping would leave them as '+').
func encodeLink(raw string) string {
	return strings.ReplaceAll(url.QueryEscape(raw), "+", "%20")
}
