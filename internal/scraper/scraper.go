package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
	"github.com/semanario-hq/semanario/internal/logger"
	"github.com/semanario-hq/semanario/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB

	defaultTimeout = 15 * time.Second
)

// Scraper fetches bookmark pages and extracts a cover image from OG tags for
// bookmarks that came back from the service without one.
type Scraper struct {
	client httpclient.Client
	delay  time.Duration
}

// New constructs a scraper with the provided HTTP client (or default) and a
// per-request throttle delay.
func New(client httpclient.Client, delay time.Duration) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	return &Scraper{client: client, delay: delay}
}

// Enrich iterates bookmarks, filling in missing covers (with throttling).
// Failures are contained per bookmark: the original record is kept and the
// error logged. On context cancellation the slice processed so far returns.
func (s *Scraper) Enrich(ctx context.Context, bookmarks []domain.Bookmark) []domain.Bookmark {
	out := append([]domain.Bookmark(nil), bookmarks...)

	throttled := false
	for i, b := range bookmarks {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		if strings.TrimSpace(b.Cover) != "" {
			continue
		}

		if throttled && s.delay > 0 {
			timer := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
		throttled = true

		cover, err := s.fetchCover(ctx, b.Link)
		if err != nil {
			logger.WarnObj("cover scrape failed", "cover_error", map[string]any{
				"link":  b.Link,
				"error": err.Error(),
			})
			continue
		}
		if cover != "" {
			out[i].Cover = cover
		}
	}

	return out
}

func (s *Scraper) fetchCover(ctx context.Context, link string) (string, error) {
	resp, err := s.client.Get(ctx, link, nil)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	return parseCover(body)
}

// parseCover extracts the og:image (or twitter:image fallback) content value.
func parseCover(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	if v := extract(`meta[property="og:image"]`); v != "" {
		return v, nil
	}
	return extract(`meta[name="twitter:image"]`), nil
}
