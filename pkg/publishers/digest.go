package publishers

import (
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
)

// Digest is the payload published downstream: the rendered markdown plus
// the range it covers.
type Digest struct {
	GeneratedAt   time.Time `json:"generated_at"`
	RangeStart    string    `json:"range_start"`
	RangeEnd      string    `json:"range_end"`
	BookmarkCount int       `json:"bookmark_count"`
	Markdown      string    `json:"markdown"`
}

// NewDigest constructs a Digest for the given range and rendered text.
func NewDigest(r domain.DateRange, bookmarkCount int, markdown string) Digest {
	return Digest{
		GeneratedAt:   time.Now().UTC(),
		RangeStart:    r.Start,
		RangeEnd:      r.End,
		BookmarkCount: bookmarkCount,
		Markdown:      markdown,
	}
}

// Range renders the covered interval for message attributes and logs.
func (d Digest) Range() string {
	if d.RangeStart == "" && d.RangeEnd == "" {
		return "all"
	}
	return d.RangeStart + ".." + d.RangeEnd
}
