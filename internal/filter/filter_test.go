package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
)

func mark(title, created string) domain.Bookmark {
	return domain.Bookmark{Title: title, Link: "https://example.com/" + title, Created: created}
}

func created(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func titles(bookmarks []domain.Bookmark) []string {
	out := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, b.Title)
	}
	return out
}

func TestByRangeUnsetRangeIsPassThrough(t *testing.T) {
	in := []domain.Bookmark{mark("a", "2024-05-14T10:00:00Z"), mark("b", "junk")}

	for _, r := range []domain.DateRange{
		{},
		{Start: "2024-05-13"},
		{End: "2024-05-19"},
	} {
		got := ByRange(in, r)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("range %+v: expected identity pass-through, got %v", r, titles(got))
		}
	}
}

func TestByRangeEmptyInput(t *testing.T) {
	got := ByRange(nil, domain.DateRange{Start: "2024-05-13", End: "2024-05-19"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", titles(got))
	}
}

func TestByRangeInclusiveBounds(t *testing.T) {
	start := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.Local)
	endOfDay := time.Date(2024, time.May, 19, 23, 59, 59, 999999999, time.Local)

	in := []domain.Bookmark{
		mark("at-start", created(start)),
		mark("before-start", created(start.Add(-time.Microsecond))),
		mark("at-end", created(endOfDay)),
		mark("after-end", created(endOfDay.Add(time.Microsecond))),
		mark("midweek", created(start.AddDate(0, 0, 3))),
	}

	got := ByRange(in, domain.DateRange{Start: "2024-05-13", End: "2024-05-19"})
	want := []string{"at-start", "at-end", "midweek"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
}

func TestByRangePreservesInputOrder(t *testing.T) {
	in := []domain.Bookmark{
		mark("late", "2024-05-17T09:00:00Z"),
		mark("early", "2024-05-14T09:00:00Z"),
		mark("middle", "2024-05-15T09:00:00Z"),
	}

	got := ByRange(in, domain.DateRange{Start: "2024-05-13", End: "2024-05-19"})
	want := []string{"late", "early", "middle"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("filter re-ordered output: got %v, want %v", titles(got), want)
	}
}

func TestByRangeExcludesMalformedCreated(t *testing.T) {
	in := []domain.Bookmark{
		mark("good", "2024-05-14T09:00:00Z"),
		mark("bad", "not-a-date"),
		mark("empty", ""),
	}

	got := ByRange(in, domain.DateRange{Start: "2024-05-13", End: "2024-05-19"})
	if !reflect.DeepEqual(titles(got), []string{"good"}) {
		t.Fatalf("got %v, want [good]", titles(got))
	}
}

func TestByRangeStartAfterEndYieldsEmpty(t *testing.T) {
	in := []domain.Bookmark{mark("a", "2024-05-14T09:00:00Z")}

	got := ByRange(in, domain.DateRange{Start: "2024-05-19", End: "2024-05-13"})
	if len(got) != 0 {
		t.Fatalf("inverted range should match nothing, got %v", titles(got))
	}
}

func TestByRangeIdempotent(t *testing.T) {
	in := []domain.Bookmark{
		mark("a", "2024-05-14T09:00:00Z"),
		mark("b", "2024-04-01T09:00:00Z"),
		mark("c", "2024-05-18T09:00:00Z"),
	}
	r := domain.DateRange{Start: "2024-05-13", End: "2024-05-19"}

	once := ByRange(in, r)
	twice := ByRange(once, r)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent: %v vs %v", titles(once), titles(twice))
	}
}
