package domain

import (
	"strings"
	"time"
)

// Domain contains core models shared across packages.

// Bookmark is a saved link record as returned by the remote bookmarking
// service. It is never mutated or written back after fetching.
type Bookmark struct {
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Tags    []string `json:"tags"`
	Cover   string   `json:"cover,omitempty"`
	Created string   `json:"created"`
}

// DateRange is a pair of calendar dates in YYYY-MM-DD form. Empty bounds
// mean "no filtering".
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether either bound of the range is unset.
func (r DateRange) IsZero() bool {
	return strings.TrimSpace(r.Start) == "" || strings.TrimSpace(r.End) == ""
}

// createdLayouts lists the accepted shapes of the created field, most
// specific first. Raindrop returns RFC3339 with milliseconds.
var createdLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreatedTime parses the bookmark's creation timestamp. The second return
// value is false when the field is empty or unparseable.
func (b Bookmark) CreatedTime() (time.Time, bool) {
	raw := strings.TrimSpace(b.Created)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range createdLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
