package markdown

import (
	"strings"
	"testing"

	"github.com/semanario-hq/semanario/internal/domain"
)

func TestRenderEmptyInput(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("Render(nil) = %q, want empty string", got)
	}
	if got := Render([]domain.Bookmark{}); got != "" {
		t.Fatalf("Render([]) = %q, want empty string", got)
	}
}

func TestRenderStandardLinkUnderDesign(t *testing.T) {
	out := Render([]domain.Bookmark{{
		Title: "Foo",
		Link:  "https://example.com/a",
		Tags:  []string{"design/ui", "misc"},
	}})

	if !strings.Contains(out, "## diseño") {
		t.Errorf("missing diseño heading:\n%s", out)
	}
	if !strings.Contains(out, "[Foo](https://example.com/a)") {
		t.Errorf("missing markdown link:\n%s", out)
	}
	if !strings.Contains(out, "![](https://s0.wp.com/mshots/v1/https%3A%2F%2Fexample.com%2Fa?w=1280)") {
		t.Errorf("missing screenshot embed with encoded link:\n%s", out)
	}
}

func TestRenderEmbedSuppressedTweet(t *testing.T) {
	out := Render([]domain.Bookmark{{
		Title: "Tweet",
		Link:  "https://x.com/someuser/status/123",
		Tags:  []string{},
	}})

	if !strings.Contains(out, "## otros") {
		t.Errorf("tag-less tweet should land in otros:\n%s", out)
	}
	want := "<!-- Twitter/X: Tweet -->\nhttps://x.com/someuser/status/123"
	if !strings.Contains(out, want) {
		t.Errorf("missing comment + bare link block %q:\n%s", want, out)
	}
	if strings.Contains(out, "[Tweet]") || strings.Contains(out, "mshots") {
		t.Errorf("suppressed link must not get markdown link or screenshot:\n%s", out)
	}
}

func TestRenderSuppressedCommentCarriesMetadata(t *testing.T) {
	out := Render([]domain.Bookmark{{
		Title: "Talk",
		Link:  "https://www.youtube.com/watch?v=abc",
		Tags:  []string{"conference", "go"},
		Cover: "https://img.example.com/talk.png",
	}})

	want := "<!-- YouTube: Talk | tags: conference, go | cover: https://img.example.com/talk.png -->"
	if !strings.Contains(out, want) {
		t.Errorf("comment line = missing %q:\n%s", want, out)
	}
}

func TestSectionOrderIsFixed(t *testing.T) {
	out := Render([]domain.Bookmark{
		{Title: "O", Link: "https://example.com/o", Tags: []string{"random"}},
		{Title: "A", Link: "https://example.com/art", Tags: []string{"art/paint"}},
		{Title: "W", Link: "https://example.com/w", Tags: []string{"webdev"}},
		{Title: "D", Link: "https://example.com/d", Tags: []string{"design/ux"}},
	})

	idx := func(heading string) int {
		i := strings.Index(out, heading)
		if i < 0 {
			t.Fatalf("heading %q missing:\n%s", heading, out)
		}
		return i
	}

	design, webdev, art, others := idx("## diseño"), idx("## desarrollo web"), idx("## arte"), idx("## otros")
	if !(design < webdev && webdev < art && art < others) {
		t.Fatalf("sections out of order (positions %d %d %d %d):\n%s", design, webdev, art, others, out)
	}
}

func TestEmptySectionsProduceNoHeading(t *testing.T) {
	out := Render([]domain.Bookmark{
		{Title: "D", Link: "https://example.com/d", Tags: []string{"design"}},
	})

	for _, heading := range []string{"## desarrollo web", "## arte", "## otros"} {
		if strings.Contains(out, heading) {
			t.Errorf("unexpected heading %q for empty section:\n%s", heading, out)
		}
	}
	if strings.Count(out, "##") != 1 {
		t.Errorf("expected a single heading:\n%s", out)
	}
}

func TestSectionForFirstMatchingTagWins(t *testing.T) {
	// The scan is over tags in order, not over prefixes in priority order:
	// a webdev tag listed before a design tag must win.
	b := domain.Bookmark{Tags: []string{"webdev/css", "design/ui"}}
	if got := sectionFor(b); got != "webdev" {
		t.Fatalf("sectionFor = %q, want webdev", got)
	}

	b = domain.Bookmark{Tags: []string{"misc", "design/ui", "webdev/css"}}
	if got := sectionFor(b); got != "design" {
		t.Fatalf("sectionFor = %q, want design", got)
	}
}

func TestSectionForNoSlashTag(t *testing.T) {
	if got := sectionFor(domain.Bookmark{Tags: []string{"art"}}); got != "art" {
		t.Fatalf("sectionFor = %q, want art", got)
	}
	if got := sectionFor(domain.Bookmark{Tags: []string{"photography"}}); got != "others" {
		t.Fatalf("sectionFor = %q, want others", got)
	}
}

func TestClassifyLinkHosts(t *testing.T) {
	cases := []struct {
		link     string
		platform string
	}{
		{"https://twitter.com/u/status/1", "Twitter/X"},
		{"http://www.twitter.com/u", "Twitter/X"},
		{"https://x.com/u", "Twitter/X"},
		{"https://www.youtube.com/watch?v=1", "YouTube"},
		{"https://youtu.be/1", "YouTube"},
		{"https://example.com/x.com", ""},
		{"https://notx.com/a", ""},
		{"ftp://x.com/a", ""},
		{"", ""},
	}
	for _, tc := range cases {
		class := classifyLink(tc.link)
		if class.platform != tc.platform || class.embedSuppressed != (tc.platform != "") {
			t.Errorf("classifyLink(%q) = %+v, want platform %q", tc.link, class, tc.platform)
		}
	}
}

func TestEncodeLinkSpaces(t *testing.T) {
	if got := encodeLink("https://example.com/a b"); got != "https%3A%2F%2Fexample.com%2Fa%20b" {
		t.Fatalf("encodeLink = %q", got)
	}
}

func TestFragmentsJoinedWithBlankLine(t *testing.T) {
	out := Render([]domain.Bookmark{
		{Title: "One", Link: "https://example.com/1", Tags: []string{"design"}},
		{Title: "Two", Link: "https://example.com/2", Tags: []string{"design"}},
	})

	if !strings.Contains(out, "?w=1280)\n\n[Two](") {
		t.Fatalf("fragments not separated by a blank line:\n%s", out)
	}
}
