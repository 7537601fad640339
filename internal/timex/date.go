package timex

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
)

const hoursPerDay = 24

// DateString formats t as a calendar date in t's location.
func DateString(t time.Time) string {
	return t.Format(common.DateLayout)
}

// ParseDate parses a YYYY-MM-DD string. Failures wrap common.ErrorMalformedDate.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrorMalformedDate, s)
	}
	return d, nil
}

// DaysBetween returns the whole number of calendar days from due to today.
// Positive means due lies in the past. Both values are YYYY-MM-DD strings.
func DaysBetween(today, due string) (int, error) {
	t, err := ParseDate(today)
	if err != nil {
		return 0, err
	}
	d, err := ParseDate(due)
	if err != nil {
		return 0, err
	}
	// both dates are UTC midnights, so the difference is an exact day multiple
	return int(t.Sub(d).Hours() / hoursPerDay), nil
}
