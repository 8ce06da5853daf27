package week

import (
	"time"

	"github.com/semanario-hq/semanario/internal/domain"
)

// Package week computes the default Monday–Sunday date range for a digest.

const dateLayout = "2006-01-02"

// Current returns the Monday–Sunday range of the week containing ref,
// using ref's local calendar date. A Sunday reference belongs to the week
// that started the preceding Monday, not the following one.
func Current(ref time.Time) domain.DateRange {
	dow := int(ref.Weekday()) // Sunday = 0 ... Saturday = 6

	mondayOffset := 1 - dow
	sundayOffset := 7 - dow
	if dow == 0 {
		mondayOffset = -6
		sundayOffset = 0
	}

	return domain.DateRange{
		Start: ref.AddDate(0, 0, mondayOffset).Format(dateLayout),
		End:   ref.AddDate(0, 0, sundayOffset).Format(dateLayout),
	}
}
