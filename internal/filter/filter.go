package filter

import (
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
)

// Package filter narrows a fetched bookmark set to a creation-date range.

const dateLayout = "2006-01-02"

// ByRange returns the bookmarks whose creation timestamp falls within the
// inclusive interval [range start at local midnight, range end at local
// end-of-day]. An unset range (either bound empty) or an empty input is a
// deliberate pass-through: the caller gets the full set back, same order.
// Bookmarks with an unparseable created field are excluded, and so is
// everything when a supplied bound itself fails to parse.
func ByRange(bookmarks []domain.Bookmark, r domain.DateRange) []domain.Bookmark {
	if len(bookmarks) == 0 || r.IsZero() {
		return bookmarks
	}

	start, startErr := time.ParseInLocation(dateLayout, r.Start, time.Local)
	end, endErr := time.ParseInLocation(dateLayout, r.End, time.Local)
	if startErr != nil || endErr != nil {
		return []domain.Bookmark{}
	}
	// end of day, still inclusive
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	out := make([]domain.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		created, ok := b.CreatedTime()
		if !ok {
			continue
		}
		if created.Before(start) || created.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
